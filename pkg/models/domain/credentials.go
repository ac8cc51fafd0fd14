package domain

// Credentials are the two secrets a dashboard session holds. They are passed
// explicitly into every operation that needs them.
type Credentials struct {
	HostawayToken string
	OpenAIKey     string
}

// Validate requires both secrets, reporting every one that is absent.
func (c Credentials) Validate() error {
	var missing []string
	if c.OpenAIKey == "" {
		missing = append(missing, "OpenAI API Key")
	}
	if c.HostawayToken == "" {
		missing = append(missing, "Hostaway Token")
	}
	if len(missing) > 0 {
		return &MissingCredentialError{Names: missing}
	}
	return nil
}
