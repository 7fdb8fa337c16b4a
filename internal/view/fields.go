package view

// ConfigFormID is the DOM id of the configuration form.
const ConfigFormID = "configForm"

// ConfigFields is the configuration form the panel shows.
func ConfigFields() []Field {
	return []Field{
		{Name: "fb_email", Label: "Facebook Email", Type: "text", Placeholder: "your_email@example.com"},
		{Name: "fb_password", Label: "Facebook Password", Type: "password", Placeholder: "Your Facebook password"},
		{Name: "facebook_app_id", Label: "Facebook App ID", Type: "text", Placeholder: "Optional"},
		{Name: "facebook_app_secret", Label: "Facebook App Secret", Type: "password", Placeholder: "Optional"},
		{Name: "facebook_redirect_uri", Label: "Facebook Redirect URI", Type: "text", Placeholder: "https://example.com/callback"},
		{Name: "debug", Label: "Debug Mode", Type: "checkbox"},
		{Name: "log_level", Label: "Log Level", Type: "select", Value: "INFO", Options: []string{"DEBUG", "INFO", "WARNING", "ERROR", "CRITICAL"}},
		{Name: "log_file", Label: "Log File Path", Type: "text", Value: "/var/log/fbmanager/app.log", Placeholder: "/var/log/fbmanager/app.log"},
		{Name: "proxy_host", Label: "Proxy Host", Type: "text", Placeholder: "proxy.example.com"},
		{Name: "proxy_port", Label: "Proxy Port", Type: "text", Placeholder: "8080"},
		{Name: "proxy_user", Label: "Proxy Username", Type: "text", Placeholder: "Optional"},
		{Name: "proxy_pass", Label: "Proxy Password", Type: "password", Placeholder: "Optional"},
		{Name: "headless_browser", Label: "Headless Browser", Type: "checkbox", Value: "true"},
		{Name: "browser_timeout", Label: "Browser Timeout (seconds)", Type: "text", Value: "30", Placeholder: "30"},
	}
}

// FieldNames lists the names of fields, in order.
func FieldNames(fields []Field) []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}
