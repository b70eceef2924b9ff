package sqlite

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/maxviazov/pets-service/internal/model"
)

// idList is a list of ids stored as a JSON array in a TEXT column.
type idList []string

func (l *idList) Scan(value any) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*l = idList{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T", v)
	}
	out := []string{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("decoding id list: %w", err)
	}
	*l = out
	return nil
}

func (l idList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

type dbCat struct {
	ID              string  `db:"id"`
	Name            string  `db:"name"`
	Age             int     `db:"age"`
	Breed           string  `db:"breed"`
	Weight          float64 `db:"weight"`
	HasClippedClaws *bool   `db:"has_clipped_claws"`
}

func (c dbCat) toDomain() model.Cat {
	return model.Cat{ID: c.ID, Name: c.Name, Age: c.Age, Breed: c.Breed, Weight: c.Weight, HasClippedClaws: c.HasClippedClaws}
}

type dbDog struct {
	ID       string  `db:"id"`
	Name     string  `db:"name"`
	Age      int     `db:"age"`
	Breed    string  `db:"breed"`
	Weight   float64 `db:"weight"`
	WagsTail *bool   `db:"wags_tail"`
}

func (d dbDog) toDomain() model.Dog {
	return model.Dog{ID: d.ID, Name: d.Name, Age: d.Age, Breed: d.Breed, Weight: d.Weight, WagsTail: d.WagsTail}
}

type dbOwner struct {
	ID   string `db:"id"`
	Name string `db:"name"`
	Age  int    `db:"age"`
	Cats idList `db:"cats"`
	Dogs idList `db:"dogs"`
}

func (o dbOwner) toDomain() model.Owner {
	cats, dogs := []string(o.Cats), []string(o.Dogs)
	if cats == nil {
		cats = []string{}
	}
	if dogs == nil {
		dogs = []string{}
	}
	return model.Owner{ID: o.ID, Name: o.Name, Age: o.Age, Cats: cats, Dogs: dogs}
}
