package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/jobreach/jobreach/internal/email"
	"github.com/jobreach/jobreach/internal/logger"
	"github.com/jobreach/jobreach/internal/model"
	"github.com/jobreach/jobreach/internal/repository"
)

// SendService dispatches outreach emails through the user's own mailbox via
// the Gmail API. Each call is a single attempt: no retries, at-least-once
// semantics once the request has left for Google.
type SendService struct {
	creds      *CredentialService
	store      repository.ProfileStore
	log        *logger.Logger
	clientOpts []option.ClientOption
}

// NewSendService creates a new SendService. Extra client options are passed
// through to the Gmail service, which lets tests point it at a fake endpoint.
func NewSendService(creds *CredentialService, store repository.ProfileStore, log *logger.Logger, opts ...option.ClientOption) *SendService {
	return &SendService{
		creds:      creds,
		store:      store,
		log:        log.WithComponent("send"),
		clientOpts: opts,
	}
}

// Send validates the message, obtains a valid credential, and submits the
// encoded envelope. It returns the Gmail-assigned message ID.
func (s *SendService) Send(ctx context.Context, userID, to, subject, body string) (string, error) {
	switch {
	case to == "":
		return "", &ValidationError{Field: "to_email"}
	case subject == "":
		return "", &ValidationError{Field: "subject"}
	case body == "":
		return "", &ValidationError{Field: "body"}
	}

	auth, err := s.creds.EnsureValid(ctx, userID)
	if err != nil {
		return "", err
	}

	svc, err := s.gmailService(ctx, auth)
	if err != nil {
		return "", fmt.Errorf("failed to create gmail client: %w", err)
	}

	msg := model.OutboundMessage{
		From:    s.senderAddress(ctx, userID, svc),
		To:      to,
		Subject: subject,
		Body:    body,
	}

	res, err := svc.Users.Messages.Send("me", &gmail.Message{Raw: email.EncodeRaw(msg)}).Context(ctx).Do()
	if err != nil {
		return "", dispatchError(err)
	}

	s.log.Info().Str("user_id", userID).Str("message_id", res.Id).Msg("email sent")
	return res.Id, nil
}

// gmailService builds a Gmail client bound to the already-validated access
// token. A static token source keeps the send path from triggering a second,
// unrecorded refresh.
func (s *SendService) gmailService(ctx context.Context, auth *model.GoogleAuthorization) (*gmail.Service, error) {
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(auth.Token()))
	opts := append([]option.ClientOption{option.WithHTTPClient(client)}, s.clientOpts...)
	return gmail.NewService(ctx, opts...)
}

// senderAddress resolves the From address: the stored profile email wins,
// then the Gmail account's own address, then blank (Gmail substitutes the
// authenticated user).
func (s *SendService) senderAddress(ctx context.Context, userID string, svc *gmail.Service) string {
	profile, err := s.store.Get(ctx, userID)
	if err == nil && profile.Email != "" {
		return profile.Email
	}

	gp, err := svc.Users.GetProfile("me").Context(ctx).Do()
	if err != nil {
		s.log.Debug().Err(err).Str("user_id", userID).Msg("could not resolve sender address")
		return ""
	}
	return gp.EmailAddress
}

func dispatchError(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		detail := apiErr.Message
		if detail == "" {
			detail = fmt.Sprintf("gmail returned status %d", apiErr.Code)
		}
		return &DispatchError{Kind: DispatchProviderRejected, Detail: detail, Err: err}
	}
	return &DispatchError{Kind: DispatchUnreachable, Detail: err.Error(), Err: err}
}
