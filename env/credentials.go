package env

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

// ErrMissingCredentials is returned by Credentials.Validate.
var ErrMissingCredentials = errors.New("env: missing reddit credentials")

// Credentials authenticate the bot against the reddit api.
type Credentials struct {
	Username  string
	Password  string
	ClientID  string
	Secret    string
	UserAgent string
}

// DefaultUserAgent is used when no user agent is configured.
const DefaultUserAgent = "karmafarm"

// AddCredentialFlags registers the flags read by LoadCredentials.
func AddCredentialFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringP("username", "u", "", "reddit username (REDDIT_USERNAME)")
	flags.StringP("password", "p", "", "reddit password (REDDIT_PASSWORD)")
	flags.StringP("clientid", "c", "", "reddit client id (REDDIT_CLIENT_ID)")
	flags.StringP("secret", "s", "", "reddit client secret (REDDIT_SECRET)")
	flags.StringP("useragent", "a", "", "reddit user agent (REDDIT_USER_AGENT)")
}

// LoadCredentials reads each credential from its flag, then its REDDIT_* variable.
func LoadCredentials(cmd *cobra.Command) Credentials {
	return Credentials{
		Username:  FlagOrEnv(cmd, "username", "REDDIT_USERNAME", ""),
		Password:  FlagOrEnv(cmd, "password", "REDDIT_PASSWORD", ""),
		ClientID:  FlagOrEnv(cmd, "clientid", "REDDIT_CLIENT_ID", ""),
		Secret:    FlagOrEnv(cmd, "secret", "REDDIT_SECRET", ""),
		UserAgent: FlagOrEnv(cmd, "useragent", "REDDIT_USER_AGENT", DefaultUserAgent),
	}
}

// Validate returns ErrMissingCredentials naming the first empty field.
func (c Credentials) Validate() error {
	for _, f := range []struct{ name, val string }{
		{"username", c.Username},
		{"password", c.Password},
		{"client id", c.ClientID},
		{"secret", c.Secret},
	} {
		if f.val == "" {
			return errors.Wrapf(ErrMissingCredentials, "%s", f.name)
		}
	}
	return nil
}

// String hides the password and secret.
func (c Credentials) String() string {
	mask := func(s string) string {
		if s == "" {
			return ""
		}
		return "****"
	}
	return "user=" + c.Username + " client=" + c.ClientID + " password=" + mask(c.Password) + " secret=" + mask(c.Secret) + " agent=" + c.UserAgent
}
