package mail

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"donation_finder/internal/config"
	"donation_finder/internal/domain"
	"donation_finder/internal/domain/entity"
	"donation_finder/pkg/contextx"
	"donation_finder/pkg/errcodes"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals

const (
	defaultSenderName      = "Donation Finder"
	defaultSubjectTemplate = "Donation Opportunities Found - {search_type}"
)

// SetupInstructions is shown when Gmail credentials are missing.
const SetupInstructions = `Gmail API setup required:
  1. Go to Google Cloud Console (console.cloud.google.com)
  2. Create a new project or select an existing one
  3. Enable the Gmail API
  4. Create OAuth 2.0 credentials (Desktop Application)
  5. Download credentials.json into this directory
  6. Set the recipient in config.json email_settings
  7. Run again to authenticate`

// Sender delivers result reports through the Gmail API using a cached,
// refreshable OAuth2 token.
type Sender struct {
	cfg      config.Mail
	settings config.EmailSettings

	// authInput supplies the authorization code during the first-run flow;
	// defaults to stdin.
	authInput io.Reader

	now func() time.Time
}

func NewSender(cfg config.Mail, settings config.EmailSettings) *Sender {
	return &Sender{
		cfg:       cfg,
		settings:  settings,
		authInput: os.Stdin,
		now:       time.Now,
	}
}

// Status reports the mail configuration state for the email-test command.
type Status struct {
	Enabled          bool
	Recipient        string
	CredentialsFound bool
	TokenFound       bool
}

func (s Status) Ready() bool {
	return s.Enabled && s.Recipient != "" && (s.CredentialsFound || s.TokenFound)
}

func (s *Sender) Status() Status {
	return Status{
		Enabled:          s.settings.Enabled,
		Recipient:        s.settings.Recipient,
		CredentialsFound: fileExists(s.cfg.CredentialsFile),
		TokenFound:       fileExists(s.cfg.TokenFile),
	}
}

// IsConfigured reports whether a send can be attempted. Unconfigured email is
// skipped by callers with a notice, not treated as an error.
func (s *Sender) IsConfigured() bool {
	return s.Status().Ready()
}

// SendResults emails the report with the output files attached.
func (s *Sender) SendResults(ctx context.Context, places []entity.Place, info entity.SearchInfo, attachments []string) error {
	if !s.settings.Enabled {
		return domain.NewError(errcodes.MailNotConfigured, "email sending is disabled in configuration")
	}
	if s.settings.Recipient == "" {
		return domain.NewError(errcodes.MailNotConfigured, "no email recipient configured")
	}

	service, err := s.gmailService(ctx)
	if err != nil {
		return err
	}

	textBody, htmlBody, err := renderReports(places, info, s.now())
	if err != nil {
		return fmt.Errorf("renderReports: %w", err)
	}

	raw, err := buildRawMessage(s.fromHeader(), s.settings.Recipient, s.subject(info, len(places)), textBody, htmlBody, attachments)
	if err != nil {
		return fmt.Errorf("buildRawMessage: %w", err)
	}

	sent, err := service.Users.Messages.Send("me", &gmail.Message{Raw: raw}).Context(ctx).Do()
	if err != nil {
		return domain.WrapError(err, errcodes.MailAuthRequired,
			"gmail send failed, check your Gmail API configuration")
	}

	logger(ctx).Info("email sent",
		"message-id", sent.Id,
		"recipient", s.settings.Recipient,
		"results", len(places),
		"attachments", len(attachments),
	)

	return nil
}

func (s *Sender) fromHeader() string {
	name := s.settings.Sender
	if name == "" {
		name = defaultSenderName
	}

	if s.settings.SenderEmail == "" {
		return name
	}

	return fmt.Sprintf("%s <%s>", name, s.settings.SenderEmail)
}

func (s *Sender) subject(info entity.SearchInfo, count int) string {
	template := s.settings.SubjectTemplate
	if template == "" {
		template = defaultSubjectTemplate
	}

	return strings.NewReplacer(
		"{search_type}", info.Type,
		"{location}", info.Location,
		"{count}", strconv.Itoa(count),
	).Replace(template)
}

func (s *Sender) gmailService(ctx context.Context) (*gmail.Service, error) {
	oauthConfig, err := s.oauthConfig()
	if err != nil {
		return nil, err
	}

	token, err := s.token(ctx, oauthConfig)
	if err != nil {
		return nil, err
	}

	source := &persistingTokenSource{
		source: oauthConfig.TokenSource(ctx, token),
		path:   s.cfg.TokenFile,
		last:   token,
	}

	service, err := gmail.NewService(ctx, option.WithTokenSource(source))
	if err != nil {
		return nil, fmt.Errorf("gmail.NewService: %w", err)
	}

	return service, nil
}

func (s *Sender) oauthConfig() (*oauth2.Config, error) {
	data, err := os.ReadFile(s.cfg.CredentialsFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.NewError(errcodes.CredentialsMissing,
				fmt.Sprintf("credentials file %q not found\n%s", s.cfg.CredentialsFile, SetupInstructions))
		}
		return nil, fmt.Errorf("os.ReadFile: %w", err)
	}

	oauthConfig, err := google.ConfigFromJSON(data, gmail.GmailSendScope)
	if err != nil {
		return nil, fmt.Errorf("google.ConfigFromJSON: %w", err)
	}

	return oauthConfig, nil
}

// token returns the cached token or, on first run, walks the console
// authorization flow and caches the result.
func (s *Sender) token(ctx context.Context, oauthConfig *oauth2.Config) (*oauth2.Token, error) {
	token, err := tokenFromFile(s.cfg.TokenFile)
	if err == nil {
		return token, nil
	}

	authURL := oauthConfig.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Printf("Open the following link in your browser, then paste the authorization code:\n%v\n> ", authURL)

	var code string
	if _, err := fmt.Fscan(bufio.NewReader(s.authInput), &code); err != nil {
		return nil, domain.WrapError(err, errcodes.MailAuthRequired, "unable to read authorization code")
	}

	token, err = oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, domain.WrapError(err, errcodes.MailAuthRequired, "token exchange failed")
	}

	if err := saveToken(s.cfg.TokenFile, token); err != nil {
		logger(ctx).Warn("unable to cache oauth token", "file", s.cfg.TokenFile, "error", err)
	}

	return token, nil
}

// persistingTokenSource writes refreshed tokens back to disk so the next run
// skips the auth flow.
type persistingTokenSource struct {
	source oauth2.TokenSource
	path   string
	last   *oauth2.Token
}

func (p *persistingTokenSource) Token() (*oauth2.Token, error) {
	token, err := p.source.Token()
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	if p.last == nil || token.AccessToken != p.last.AccessToken {
		p.last = token
		_ = saveToken(p.path, token)
	}

	return token, nil
}

func tokenFromFile(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("os.Open: %w", err)
	}
	defer f.Close()

	token := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(token); err != nil {
		return nil, fmt.Errorf("json.Decode: %w", err)
	}

	return token, nil
}

func saveToken(path string, token *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("os.OpenFile: %w", err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(token); err != nil {
		return fmt.Errorf("json.Encode: %w", err)
	}

	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
