package badtag

//sqlmodel:table name="users"
type User struct {
	ID   int    `sqlmodel:auto;key:PRIMARY`
	Name string `json:"name"`
}
