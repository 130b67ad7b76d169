package auth

type SessionKey string

const (
	SessionKeyToken  SessionKey = "token"
	SessionKeyMode   SessionKey = "mode"
	SessionKeyLocale SessionKey = "locale"
)
