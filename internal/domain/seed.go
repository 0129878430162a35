package domain

// DemoRecords returns the demo data set used when a new store is seeded or reset.
func DemoRecords() Records {
	return Records{
		Version: SchemaVersion,
		Materials: []Material{
			{ID: "m1", Name: "Premium Cowhide (Brown)", Cost: 1500, Yield: 30, Date: "2023-10-01", RemainingUnits: 15},
			{ID: "m2", Name: "Waxed Thread (Roll)", Cost: 100, Yield: 50, Date: "2023-10-01", RemainingUnits: 30},
		},
		Products: []Product{
			{
				ID:            "p1",
				Name:          "Classic Bifold Wallet",
				Price:         350,
				MaterialIDs:   []string{"m1", "m2"},
				LaborCost:     40,
				PackagingCost: 15,
				ShippingCost:  35,
			},
		},
		Orders: []Order{
			{ID: "o1", CustomerName: "Ahmed B.", City: "Casablanca", ProductID: "p1", Quantity: 1, Status: StatusDelivered, Date: "2023-10-12", LastUpdated: "2023-10-14", FinalPrice: Set(350), ManualShippingCost: Set(35)},
			{ID: "o2", CustomerName: "Sara K.", City: "Rabat", ProductID: "p1", Quantity: 1, Status: StatusDelivered, Date: "2023-10-12", LastUpdated: "2023-10-14", FinalPrice: Set(350), ManualShippingCost: Set(35)},
			{ID: "o3", CustomerName: "Omar L.", City: "Marrakech", ProductID: "p1", Quantity: 1, Status: StatusShipped, Date: "2023-10-13", LastUpdated: "2023-10-13", FinalPrice: Set(350), ManualShippingCost: Set(35)},
			{ID: "o4", CustomerName: "Yassine M.", City: "Tangier", ProductID: "p1", Quantity: 1, Status: StatusReturnedPaid, Date: "2023-10-11", LastUpdated: "2023-10-15", FinalPrice: Set(350), ManualShippingCost: Set(35)},
			{ID: "o5", CustomerName: "Fatima Z.", City: "Fes", ProductID: "p1", Quantity: 2, Status: StatusPending, Date: "2023-10-15", LastUpdated: "2023-10-15", FinalPrice: Set(700), ManualShippingCost: Set(35)},
		},
		Ads: []AdSpend{
			{ID: "a1", Platform: PlatformFacebook, Amount: 200, Purpose: PurposeTesting, Date: "2023-10-05"},
			{ID: "a2", Platform: PlatformInstagram, Amount: 500, Purpose: PurposeScaling, Date: "2023-10-10"},
		},
	}
}
