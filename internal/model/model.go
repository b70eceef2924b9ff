// Package model contains domain entities and DTOs used across layers.
package model

// PetType selects one of the two pet collections.
type PetType string

const (
	PetTypeCat PetType = "cat"
	PetTypeDog PetType = "dog"
)

// Valid reports whether t names a known collection.
func (t PetType) Valid() bool {
	return t == PetTypeCat || t == PetTypeDog
}

// Cat is a stored cat record.
type Cat struct {
	ID              string  `json:"_id"`
	Name            string  `json:"name"`
	Age             int     `json:"age"`
	Breed           string  `json:"breed"`
	Weight          float64 `json:"weight"`
	HasClippedClaws *bool   `json:"hasClippedClaws,omitempty"`
}

// Dog is a stored dog record.
type Dog struct {
	ID       string  `json:"_id"`
	Name     string  `json:"name"`
	Age      int     `json:"age"`
	Breed    string  `json:"breed"`
	Weight   float64 `json:"weight"`
	WagsTail *bool   `json:"wagsTail,omitempty"`
}

// Owner holds weak references to cats and dogs: ids only, no integrity checks.
type Owner struct {
	ID   string   `json:"_id"`
	Name string   `json:"name"`
	Age  int      `json:"age"`
	Cats []string `json:"cats"`
	Dogs []string `json:"dogs"`
}

// PetsCount is the displayed pet count, dangling ids included.
func (o Owner) PetsCount() int { return len(o.Cats) + len(o.Dogs) }

// PetView is the listing projection shared by both collections.
// Fields the source type does not carry stay nil and are omitted from JSON.
type PetView struct {
	ID              string  `json:"_id"`
	Name            string  `json:"name"`
	Age             int     `json:"age"`
	Breed           string  `json:"breed"`
	Weight          float64 `json:"weight"`
	HasClippedClaws *bool   `json:"hasClippedClaws,omitempty"`
	WagsTail        *bool   `json:"wagsTail,omitempty"`
}

func CatView(c Cat) PetView {
	return PetView{ID: c.ID, Name: c.Name, Age: c.Age, Breed: c.Breed, Weight: c.Weight, HasClippedClaws: c.HasClippedClaws}
}

func DogView(d Dog) PetView {
	return PetView{ID: d.ID, Name: d.Name, Age: d.Age, Breed: d.Breed, Weight: d.Weight, WagsTail: d.WagsTail}
}

// PetPage is one page of a pet listing. Field names follow the public API.
type PetPage struct {
	Docs          []PetView `json:"docs"`
	TotalDocs     int       `json:"totalDocs"`
	Limit         int       `json:"limit"`
	TotalPages    int       `json:"totalPages"`
	Page          int       `json:"page"`
	PagingCounter int       `json:"pagingCounter"`
	HasPrevPage   bool      `json:"hasPrevPage"`
	HasNextPage   bool      `json:"hasNextPage"`
	PrevPage      *int      `json:"prevPage"`
	NextPage      *int      `json:"nextPage"`
}

// OwnerView is an owner with its references resolved to full records.
type OwnerView struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
	Age  int    `json:"age"`
	Cats []Cat  `json:"cats"`
	Dogs []Dog  `json:"dogs"`
}

// TopOwnersGroup is one entry of the owner ranking: all selected owners sharing a pet count.
type TopOwnersGroup struct {
	PetsCount int         `json:"petsCount"`
	Owners    []OwnerView `json:"owners"`
}
