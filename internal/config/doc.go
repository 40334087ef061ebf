// Package config manages the logobrief settings file.
//
// Settings are stored as YAML in the platform configuration directory
// ($XDG_CONFIG_HOME/logobrief/config.yaml on Linux) or at the path in
// LOGOBRIEF_CONFIG. A missing file is not an error; defaults are used.
//
// Command-line flags take precedence over file values. Commands load the
// file once and then apply flag overrides:
//
//	settings, err := config.LoadSettings()
//	if err != nil {
//	    return err
//	}
//	if endpoint != "" {
//	    settings.Submission.Endpoint = endpoint
//	}
package config
