package showdown

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/4N5H64M3R/Showdown-ChatBot/pkg/text"
)

var loginClient = &http.Client{Timeout: 15 * time.Second}

// login performs the challenge handshake: the challstr from the server
// is exchanged for an assertion at the login server, then claimed with
// the /trn command. Registered nicks authenticate with act=login,
// unregistered ones with act=getassertion.
func (c *Client) login(challstr string) {
	assertion, err := c.fetchAssertion(challstr)
	if err != nil {
		c.log.Error().Err(err).Str("nick", c.cfg.Nick).Msg("login failed")
		return
	}
	c.Send("/trn " + c.cfg.Nick + ",0," + assertion)
}

func (c *Client) fetchAssertion(challstr string) (string, error) {
	form := url.Values{}
	if c.cfg.Password != "" {
		form.Set("act", "login")
		form.Set("name", c.cfg.Nick)
		form.Set("pass", c.cfg.Password)
	} else {
		form.Set("act", "getassertion")
		form.Set("userid", text.ToID(c.cfg.Nick))
	}
	form.Set("challstr", challstr)

	resp, err := loginClient.PostForm(c.cfg.LoginServer, form)
	if err != nil {
		return "", fmt.Errorf("posting to login server: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading login response: %w", err)
	}

	if c.cfg.Password != "" {
		// Response is "]" followed by a JSON object.
		raw := strings.TrimPrefix(string(body), "]")
		var result struct {
			ActionSuccess bool   `json:"actionsuccess"`
			Assertion     string `json:"assertion"`
		}
		if err := json.Unmarshal([]byte(raw), &result); err != nil {
			return "", fmt.Errorf("decoding login response: %w", err)
		}
		if !result.ActionSuccess || result.Assertion == "" {
			return "", fmt.Errorf("login rejected for %s", c.cfg.Nick)
		}
		return result.Assertion, nil
	}

	// Unregistered: the body is the assertion itself. A leading ";"
	// means the nick is registered and needs a password.
	assertion := string(body)
	if strings.HasPrefix(assertion, ";") {
		return "", fmt.Errorf("nick %s is registered, a password is required", c.cfg.Nick)
	}
	return assertion, nil
}
