package gen

var (
	// FeatureBuilder generates a With<Field> setter per column.
	FeatureBuilder = Feature{
		Name:        "builder",
		Stage:       Stable,
		Default:     true,
		Description: "Generates With<Field> value setters for building models in tests and fixtures",
	}

	// FeatureMsgpack generates msgpack map encoding for foreign readers.
	FeatureMsgpack = Feature{
		Name:        "msgpack",
		Stage:       Beta,
		Default:     true,
		Description: "Generates EncodeMsgpack/DecodeMsgpack methods that marshal the model as a map keyed by logical names",
	}

	// FeatureStringer generates a length-limited String method.
	FeatureStringer = Feature{
		Name:        "stringer",
		Stage:       Alpha,
		Default:     false,
		Description: "Generates a String method that prints every field with long values truncated",
	}

	// FeatureGraphQL writes a GraphQL object type per model next to the
	// generated code.
	FeatureGraphQL = Feature{
		Name:        "graphql",
		Stage:       Experimental,
		Default:     false,
		Description: "Writes schema.graphql with one object type per model",
	}

	// FeatureMigrate writes the MySQL migration plan of every model.
	FeatureMigrate = Feature{
		Name:        "migrate",
		Stage:       Experimental,
		Default:     false,
		Description: "Writes schema.sql with the CREATE TABLE plan of every model, computed by Atlas",
	}

	// AllFeatures holds a list of all feature-flags.
	AllFeatures = []Feature{
		FeatureBuilder,
		FeatureMsgpack,
		FeatureStringer,
		FeatureGraphQL,
		FeatureMigrate,
	}
)

// FeatureStage describes the stage of the codegen feature.
type FeatureStage int

const (
	_ FeatureStage = iota

	// Experimental features are in development and may change output.
	Experimental

	// Alpha features are complete, but their output may still change.
	Alpha

	// Beta features are documented and their output is not expected to change.
	Beta

	// Stable features are Beta features that have been in use for a while.
	Stable
)

// String returns the stage name.
func (s FeatureStage) String() string {
	switch s {
	case Experimental:
		return "experimental"
	case Alpha:
		return "alpha"
	case Beta:
		return "beta"
	case Stable:
		return "stable"
	default:
		return "unknown"
	}
}

// A Feature of the sqlmodel codegen.
type Feature struct {
	// Name of the feature.
	Name string

	// Stage of the feature.
	Stage FeatureStage

	// Default values indicates if this feature is enabled by default.
	Default bool

	// A Description of this feature.
	Description string
}

// FeatureByName returns the feature registered under name.
func FeatureByName(name string) (Feature, bool) {
	for _, f := range AllFeatures {
		if f.Name == name {
			return f, true
		}
	}
	return Feature{}, false
}

// DefaultFeatures returns the features enabled by default.
func DefaultFeatures() []Feature {
	var fs []Feature
	for _, f := range AllFeatures {
		if f.Default {
			fs = append(fs, f)
		}
	}
	return fs
}
