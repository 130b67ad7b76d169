// Package resources declares the backend collections the console manages
// and the field layout of each.
package resources

import "shuul-console/internal/schema"

// Definition describes one managed collection.
type Definition struct {
	Name       string
	Title      string
	Endpoint   string
	Fields     []schema.Field
	HasActions bool
}

func strField(name, label, filterKey string) schema.Field {
	return schema.Field{
		Path:      []string{name},
		Label:     label,
		Type:      schema.TypeString,
		Default:   "",
		Editable:  true,
		Visible:   true,
		FilterKey: filterKey,
	}
}

func boolField(name, label string, def bool) schema.Field {
	return schema.Field{
		Path:     []string{name},
		Label:    label,
		Type:     schema.TypeBoolean,
		Default:  def,
		Editable: true,
		Visible:  true,
	}
}

var ruleFields = []schema.Field{
	{Path: []string{"id"}, Label: "Id", Type: schema.TypeNumber, Default: 0, Visible: true, Fixed: "left", Width: 80},
	boolField("active", "Active", true),
	boolField("allow", "Allow", false),
	boolField("store", "Store", true),
	{Path: []string{"weight"}, Label: "Weight", Type: schema.TypeNumber, Default: 100, Editable: true, Visible: true, Required: true, Width: 80},
	strField("ip_address", "IP Address", "ip_address"),
	strField("protocol", "Protocol", "protocol"),
	strField("fqdn", "FQDN", "fqdn"),
	strField("path", "Path", "path"),
	strField("query", "Query", "query"),
	strField("city_name", "City Name", "city_name"),
	strField("country_name", "Country Name", "country_name"),
	strField("country_code", "Country Code", "country_code"),
}

func recordFields(withRule bool) []schema.Field {
	fields := []schema.Field{
		{Path: []string{"created_at"}, Label: "Created at", Type: schema.TypeDate, Visible: true},
		readOnly(strField("ip_address", "IP Address", "ip_address")),
		readOnly(strField("protocol", "Protocol", "protocol")),
		readOnly(strField("fqdn", "FQDN", "fqdn")),
		readOnly(strField("path", "Path", "path")),
		readOnly(strField("query", "Query", "query")),
		readOnly(strField("city_name", "City Name", "city_name")),
		readOnly(strField("country_name", "Country Name", "country_name")),
		readOnly(strField("country_code", "Country Code", "country_code")),
	}
	if withRule {
		fields = append(fields, schema.Field{
			Path: []string{"rule_id"}, Label: "Rule Id", Type: schema.TypeNumber,
			Visible: true, FilterKey: "rule_id", Fixed: "right",
		})
	}
	return fields
}

func readOnly(f schema.Field) schema.Field {
	f.Editable = false
	return f
}

var ignoredFields = []schema.Field{
	{Path: []string{"id"}, Label: "Id", Type: schema.TypeNumber, Default: 0, Visible: true, Width: 80},
	boolField("active", "Active", true),
	strField("ip_address", "IP Address", "ip_address"),
	strField("protocol", "Protocol", "protocol"),
	strField("fqdn", "FQDN", "fqdn"),
	strField("path", "Path", "path"),
	strField("query", "Query", "query"),
	strField("city_name", "City Name", "city_name"),
	strField("country_name", "Country Name", "country_name"),
	strField("country_code", "Country Code", "country_code"),
}

var userFields = []schema.Field{
	{Path: []string{"id"}, Label: "Id", Type: schema.TypeNumber, Default: 0, Visible: true, Width: 80},
	{Path: []string{"email"}, Label: "Email", Type: schema.TypeString, Default: "", Editable: true, Visible: true, Required: true, FilterKey: "email"},
	{Path: []string{"role"}, Label: "Role", Type: schema.TypeSelect, Default: "user", Editable: true, Visible: true, Required: true,
		Options: []schema.Option{{Value: "admin", Label: "Admin"}, {Value: "user", Label: "User"}}},
	boolField("active", "Active", true),
	{Path: []string{"created_at"}, Label: "Created at", Type: schema.TypeDate, Visible: true},
}

// Definitions lists every collection the console serves, keyed by name.
var Definitions = map[string]Definition{
	"rules": {
		Name:       "rules",
		Title:      "Rules",
		Endpoint:   "rules",
		Fields:     ruleFields,
		HasActions: true,
	},
	"requests": {
		Name:     "requests",
		Title:    "Requests",
		Endpoint: "requests",
		Fields:   recordFields(true),
	},
	"records": {
		Name:     "records",
		Title:    "Records",
		Endpoint: "records",
		Fields:   recordFields(true),
	},
	"ignored": {
		Name:       "ignored",
		Title:      "Ignored",
		Endpoint:   "ignored",
		Fields:     ignoredFields,
		HasActions: true,
	},
	"users": {
		Name:       "users",
		Title:      "Users",
		Endpoint:   "users",
		Fields:     userFields,
		HasActions: true,
	},
}

// Lookup returns the definition for name.
func Lookup(name string) (Definition, bool) {
	def, ok := Definitions[name]
	return def, ok
}

// Names returns the resource names in a stable order.
func Names() []string {
	return []string{"rules", "requests", "records", "ignored", "users"}
}
