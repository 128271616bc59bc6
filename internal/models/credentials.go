package models

// Credentials are supplied once per sequence run and never persisted
type Credentials struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}
