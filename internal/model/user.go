// Package model defines the core data models for the application.
package model

// Geo holds geographic coordinates for an address.
// The fixture source serializes coordinates as strings.
type Geo struct {
	Lat string `bson:"lat" json:"lat"`
	Lng string `bson:"lng" json:"lng"`
}

// Address is a user's postal address.
type Address struct {
	Street  string `bson:"street" json:"street"`
	Suite   string `bson:"suite" json:"suite"`
	City    string `bson:"city" json:"city"`
	Zipcode string `bson:"zipcode" json:"zipcode"`
	Geo     Geo    `bson:"geo" json:"geo"`
}

// Company is a user's company profile.
type Company struct {
	Name        string `bson:"name" json:"name"`
	CatchPhrase string `bson:"catchPhrase" json:"catchPhrase"`
	BS          string `bson:"bs" json:"bs"`
}

// User is a profile document in the users collection.
// IDs are application-assigned integers from the fixture source,
// not generated by the store.
type User struct {
	ID       int      `bson:"id" json:"id" validate:"required,gt=0"`
	Name     string   `bson:"name" json:"name" validate:"required"`
	Username string   `bson:"username" json:"username" validate:"required"`
	Email    string   `bson:"email" json:"email" validate:"required,email"`
	Phone    string   `bson:"phone,omitempty" json:"phone,omitempty"`
	Website  string   `bson:"website,omitempty" json:"website,omitempty"`
	Address  *Address `bson:"address,omitempty" json:"address,omitempty"`
	Company  *Company `bson:"company,omitempty" json:"company,omitempty"`

	// Posts is populated at read time only; collections stay normalized.
	Posts []Post `bson:"-" json:"posts,omitempty"`
}
