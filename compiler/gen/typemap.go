package gen

// TypePair is one entry of a type mapping table.
type TypePair struct {
	From string
	To   string
}

// GoTypes maps declared Go types to intermediate storage labels. Lookup is
// first match and case-sensitive.
var GoTypes = []TypePair{
	{"int", "int"},
	{"int8", "tinyint"},
	{"int16", "smallint"},
	{"int32", "int"},
	{"int64", "bigint"},
	{"uint", "int"},
	{"uint8", "tinyint"},
	{"uint16", "smallint"},
	{"uint32", "int"},
	{"uint64", "bigint"},
	{"string", "varchar"},
	{"bool", "bool"},
	{"float32", "float"},
	{"float64", "double"},
	{"time.Time", "datetime"},
	{"decimal.Decimal", "decimal"},
	{"uuid.UUID", "uuid"},
	{"[]byte", "blob"},
	{"json.RawMessage", "json"},
}

// StorageTypes maps intermediate labels to concrete MySQL column types.
var StorageTypes = []TypePair{
	{"int", "int(11)"},
	{"varchar", "varchar(32)"},
	{"bool", "tinyint(1)"},
	{"tinyint", "tinyint(4)"},
	{"smallint", "smallint(6)"},
	{"bigint", "bigint(20)"},
	{"float", "float"},
	{"double", "double"},
	{"datetime", "datetime"},
	{"decimal", "decimal(20,6)"},
	{"uuid", "char(36)"},
	{"blob", "blob"},
	{"json", "json"},
}

// lookup returns the mapping of name, or name itself when no entry matches.
func lookup(table []TypePair, name string) string {
	for _, p := range table {
		if p.From == name {
			return p.To
		}
	}
	return name
}

// MapType resolves the storage type of a declared Go type through both
// mapping stages. It never fails: unknown names fall through unchanged.
//
//	MapType("int")       // "int(11)"
//	MapType("string")    // "varchar(32)"
//	MapType("[4]string") // "[4]string"
func MapType(goType string) string {
	return lookup(StorageTypes, lookup(GoTypes, goType))
}
