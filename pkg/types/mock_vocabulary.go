package types

// MockVocabulary is a small fixed snapshot used by tests across packages.
// Ford and Toyota both carry a "Supra" model.
func MockVocabulary() *Vocabulary {
	ford := &Option{Id: 1, Name: "Ford"}
	toyota := &Option{Id: 2, Name: "Toyota"}
	landRover := &Option{Id: 3, Name: "Land Rover"}
	return &Vocabulary{
		Makes: []Option{*ford, *toyota, *landRover},
		Models: []Option{
			{Id: 10, Name: "Mustang", Make: ford},
			{Id: 11, Name: "Supra", Make: ford},
			{Id: 20, Name: "Supra", Make: toyota},
			{Id: 21, Name: "Corolla", Make: toyota},
			{Id: 30, Name: "Range Rover", Make: landRover},
		},
		Colors:         []Option{{Id: 1, Name: "Red"}, {Id: 2, Name: "Midnight Blue"}},
		Transmissions:  []Option{{Id: 1, Type: "Automatic"}, {Id: 2, Type: "Manual"}},
		Conditions:     []Option{{Id: 1, Type: "New"}, {Id: 2, Type: "Used"}},
		FuelTypes:      []Option{{Id: 1, Type: "Petrol"}, {Id: 2, Type: "Diesel"}},
		DriveTypes:     []Option{{Id: 1, Type: "All Wheel Drive"}, {Id: 2, Type: "Rear Wheel Drive"}},
		CarTypes:       []Option{{Id: 1, Type: "Coupe"}, {Id: 2, Type: "SUV"}},
		Features:       []Option{{Id: 1, Name: "Leather Seats"}, {Id: 2, Name: "Sunroof"}, {Id: 3, Name: "Heated Seats"}},
		SafetyFeatures: []Option{{Id: 1, Name: "ABS"}, {Id: 2, Name: "Lane Assist"}},
	}
}
