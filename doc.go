// Package sqlmodel is the runtime linked by code that the sqlmodel generator
// writes for annotated structs.
//
// A model is declared once:
//
//	//sqlmodel:table name="users" who="AppPool"
//	type User struct {
//		ID   int    `sqlmodel:"auto;key:PRIMARY"`
//		Name string `sqlmodel:"type:varchar(64)"`
//	}
//
// and `sqlmodel gen` writes user_sqlmodel.go next to it with the statement
// fragments (TableName, FieldsWithBackquote, FieldSavesWithoutID, ...), the
// literal CREATE TABLE statement, positional row decoding (FromRow), the
// ordered parameters (FieldValues), Equal, Lock and the query helpers.
//
// # Pools
//
// The type named by who owns the database pool of the model. Its Lock method
// returns a Guard with exclusive use of the pool:
//
//	var pool, _ = sqlmodel.OpenPool(dialect.MySQL, dsn, sqlmodel.WithStats())
//
//	type AppPool struct{}
//
//	func (AppPool) Lock() (*sqlmodel.Guard, error) { return pool.Lock() }
//
// Statements use :name placeholders; Params.Bind rewrites them for the pool
// dialect.
//
// # Queries
//
//	users, err := sqlmodel.GetMulti[User](ctx, "SELECT "+(*User)(nil).FieldsWithBackquote()+" FROM `users`", nil)
//	u := &User{Name: "ada"}
//	_, err = sqlmodel.Save(ctx, u) // INSERT, since u.ID is zero
//
// # Errors
//
// FromRow returns a *RowError carrying the row unchanged when a value is
// missing or cannot be converted. Generated methods wrap failures with their
// name (WrapFunc); Trace lists the names an error passed through.
package sqlmodel
