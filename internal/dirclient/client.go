// Package dirclient provides an HTTP client for the directory REST API.
package dirclient

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/agentstation/seatsync/internal/transport"
	"github.com/agentstation/seatsync/pkg/constants"
	"github.com/agentstation/seatsync/pkg/directory"
	"github.com/agentstation/seatsync/pkg/errors"
	"github.com/agentstation/seatsync/pkg/license"
	"github.com/agentstation/seatsync/pkg/logging"
)

// Wire structures for the directory API.
type userResponse struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	DisplayName   string `json:"display_name"`
	LicenseTier   int    `json:"license_tier"`
	LicenseSource string `json:"license_source"`
}

type usersPageResponse struct {
	Users      []userResponse `json:"users"`
	Page       int            `json:"page"`
	TotalPages int            `json:"total_pages"`
}

type createUserRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name,omitempty"`
	LicenseTier int    `json:"license_tier"`
}

type updateLicenseRequest struct {
	LicenseTier int `json:"license_tier"`
}

// Client implements the directory.Client interface over the REST API.
type Client struct {
	baseURL   string
	transport *transport.Client
	pageSize  int
	logger    *zerolog.Logger
}

var _ directory.Client = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithPageSize sets the number of users requested per snapshot page.
// Values outside the API's accepted range are clamped.
func WithPageSize(n int) Option {
	return func(c *Client) {
		if n < 1 {
			n = 1
		}
		if n > constants.MaxPageSize {
			n = constants.MaxPageSize
		}
		c.pageSize = n
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a directory API client for the given base URL. The token is
// sent as a bearer credential on every request.
func New(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		transport: transport.New(&transport.BearerAuth{}, token),
		pageSize:  constants.DefaultPageSize,
		logger:    logging.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchUsers retrieves the complete directory snapshot, walking pages until
// the API reports the last one.
func (c *Client) FetchUsers(ctx context.Context) ([]directory.User, error) {
	var users []directory.User

	page := 1
	for {
		endpoint := fmt.Sprintf("%s/api/v1/users?page=%d&per_page=%d", c.baseURL, page, c.pageSize)

		resp, err := c.transport.Get(ctx, endpoint)
		if err != nil {
			return nil, &errors.APIError{
				Operation: "fetch users",
				Endpoint:  endpoint,
				Message:   "request failed",
				Err:       err,
			}
		}

		var result usersPageResponse
		if err := transport.DecodeResponse(resp, "fetch users", &result); err != nil {
			return nil, err
		}

		for _, u := range result.Users {
			users = append(users, u.toDirectoryUser())
		}

		// A zero total means the API did not paginate the response.
		if result.TotalPages == 0 || page >= result.TotalPages || len(result.Users) == 0 {
			break
		}

		page++
		if page > constants.MaxSnapshotPages {
			return nil, &errors.APIError{
				Operation: "fetch users",
				Endpoint:  endpoint,
				Message:   fmt.Sprintf("pagination exceeded %d pages", constants.MaxSnapshotPages),
			}
		}
	}

	c.logger.Debug().
		Int("users", len(users)).
		Int("pages", page).
		Msg("fetched directory snapshot")

	return users, nil
}

// CreateUser provisions a new directory user at the given license tier.
func (c *Client) CreateUser(ctx context.Context, email, displayName string, tier license.Tier) (directory.User, error) {
	endpoint := c.baseURL + "/api/v1/users"

	body := createUserRequest{
		Email:       email,
		DisplayName: displayName,
		LicenseTier: int(tier),
	}

	resp, err := c.transport.Post(ctx, endpoint, body)
	if err != nil {
		return directory.User{}, &errors.APIError{
			Operation: "create user",
			Endpoint:  endpoint,
			Message:   "request failed",
			Err:       err,
		}
	}

	var created userResponse
	if err := transport.DecodeResponse(resp, "create user", &created); err != nil {
		return directory.User{}, err
	}

	c.logger.Debug().
		Str("id", created.ID).
		Str("email", created.Email).
		Int("license_tier", created.LicenseTier).
		Msg("created directory user")

	return created.toDirectoryUser(), nil
}

// UpdateUserTier changes the license tier of an existing directory user.
func (c *Client) UpdateUserTier(ctx context.Context, id string, tier license.Tier) error {
	endpoint := fmt.Sprintf("%s/api/v1/users/%s/license", c.baseURL, url.PathEscape(id))

	resp, err := c.transport.Patch(ctx, endpoint, updateLicenseRequest{LicenseTier: int(tier)})
	if err != nil {
		return &errors.APIError{
			Operation: "update license",
			Endpoint:  endpoint,
			Message:   "request failed",
			Err:       err,
		}
	}

	if err := transport.DecodeResponse(resp, "update license", nil); err != nil {
		return err
	}

	c.logger.Debug().
		Str("id", id).
		Int("license_tier", int(tier)).
		Msg("updated directory user license")

	return nil
}

// toDirectoryUser converts a wire user to the directory type.
func (u userResponse) toDirectoryUser() directory.User {
	return directory.User{
		ID:            u.ID,
		Email:         u.Email,
		DisplayName:   u.DisplayName,
		TierCode:      license.Tier(u.LicenseTier),
		LicenseSource: directory.LicenseSource(u.LicenseSource),
	}
}
