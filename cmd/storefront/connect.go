package main

import (
	"context"
	"log"

	"github.com/matst80/car-finder/pkg/messaging"
	"github.com/matst80/car-finder/pkg/storefront"
	amqp "github.com/rabbitmq/amqp091-go"
)

// connectVocabularyChanges drops the cached filter options whenever the
// listings backend announces a change.
func connectVocabularyChanges(amqpUrl string, loader *storefront.VocabularyLoader) (*amqp.Connection, error) {
	conn, err := amqp.DialConfig(amqpUrl, amqp.Config{
		Properties: amqp.NewConnectionProperties(),
	})
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	err = messaging.ListenToTopic(ch, country, messaging.VocabularyChanged, func(change messaging.VocabularyChange) error {
		log.Printf("Vocabulary changed %v", change.Categories)
		loader.Invalidate(context.Background())
		return nil
	})
	if err != nil {
		conn.Close()
		return nil, err
	}
	log.Printf("Listening for vocabulary changes")
	return conn, nil
}
