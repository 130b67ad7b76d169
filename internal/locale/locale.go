// Package locale provides the console's message catalog. Keys missing from
// a catalog fall back to English, then to the key itself.
package locale

// Supported lists the locales the console ships catalogs for.
var Supported = []string{"en", "es"}

var catalogs = map[string]map[string]string{
	"en": {
		"dialog.required": "Required field missing",
		"dialog.success":  "Operation completed",
		"login.failed":    "Invalid email or password",
		"login.expired":   "Session expired, sign in again",
		"nav.dashboard":   "Dashboard",
		"nav.charts":      "Charts",
		"nav.rules":       "Rules",
		"nav.requests":    "Requests",
		"nav.records":     "Records",
		"nav.ignored":     "Ignored",
		"nav.users":       "Users",
	},
	"es": {
		"dialog.required": "Falta un campo obligatorio",
		"dialog.success":  "Operación completada",
		"login.failed":    "Correo o contraseña no válidos",
		"login.expired":   "Sesión caducada, inicie sesión de nuevo",
		"nav.dashboard":   "Panel",
		"nav.charts":      "Gráficos",
		"nav.rules":       "Reglas",
		"nav.requests":    "Peticiones",
		"nav.records":     "Registros",
		"nav.ignored":     "Ignorados",
		"nav.users":       "Usuarios",
	},
}

// IsSupported reports whether a catalog exists for the locale.
func IsSupported(locale string) bool {
	_, ok := catalogs[locale]
	return ok
}

// Translator resolves keys against one locale's catalog.
type Translator struct {
	locale string
}

func NewTranslator(locale string) Translator {
	if !IsSupported(locale) {
		locale = "en"
	}
	return Translator{locale: locale}
}

func (t Translator) Locale() string {
	return t.locale
}

func (t Translator) T(key string) string {
	if msg, ok := catalogs[t.locale][key]; ok {
		return msg
	}
	if msg, ok := catalogs["en"][key]; ok {
		return msg
	}
	return key
}
