package valid

import (
	"time"

	"github.com/shopspring/decimal"
)

// User is stored in the users table.
//
//sqlmodel:table name="users" who="AppPool"
type User struct {
	ID        int       `sqlmodel:"auto;key:PRIMARY"`
	Name      string    `sqlmodel:"name:user_name;type:varchar(64)"`
	Balance   decimal.Decimal
	CreatedAt time.Time `json:"created_at" sqlmodel:"key"`
	cache     []byte    `sqlmodel:"-"`
}

//sqlmodel:model
type Tag struct {
	Label string
}

// Ignored has no directive.
type Ignored struct {
	Value int
}
