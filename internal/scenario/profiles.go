package scenario

// Built-in demand profiles used when a bare map is loaded headlessly
// instead of a full scenario file. The big profile is roughly an order of
// magnitude more demand than the small one.

func SmallProfile(mapName string) *Scenario {
	return &Scenario{
		Name: "small",
		Map:  mapName,
		Demand: []DemandRule{
			{Mode: "walk", Count: 30, From: "06:00:00", To: "10:00:00", MinDistanceM: 200, MaxDistanceM: 1500},
			{Mode: "bike", Count: 20, From: "06:30:00", To: "09:30:00", MinDistanceM: 500, MaxDistanceM: 5000},
			{Mode: "drive", Count: 50, From: "06:00:00", To: "10:00:00", MinDistanceM: 1000, MaxDistanceM: 15000},
			{Mode: "transit", Route: "48", Count: 5, Schedule: "*/30 6-9 * * *", MinDistanceM: 1000, MaxDistanceM: 8000},
		},
	}
}

func BigProfile(mapName string) *Scenario {
	return &Scenario{
		Name: "big",
		Map:  mapName,
		Demand: []DemandRule{
			{Mode: "walk", Count: 300, From: "05:00:00", To: "11:00:00", MinDistanceM: 200, MaxDistanceM: 2000},
			{Mode: "bike", Count: 200, From: "05:30:00", To: "10:30:00", MinDistanceM: 500, MaxDistanceM: 6000},
			{Mode: "drive", Count: 600, From: "05:00:00", To: "11:00:00", MinDistanceM: 1000, MaxDistanceM: 20000},
			{Mode: "transit", Route: "48", Count: 25, Schedule: "*/15 5-10 * * *", MinDistanceM: 1000, MaxDistanceM: 10000},
		},
	}
}
