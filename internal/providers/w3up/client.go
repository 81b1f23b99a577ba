package w3up

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/ipfs/go-cid"
	"github.com/mr-tron/base58"
	"go.uber.org/zap"

	"github.com/nitk/memory-vault/internal/adapter"
	"github.com/nitk/memory-vault/internal/domain"
	"github.com/nitk/memory-vault/internal/logger"
)

var (
	// ErrUnauthorized is returned when the storage service rejects the account identity
	ErrUnauthorized = errors.New("storage account unauthorized")
	// ErrNotAuthenticated is returned when an account call is made before login or registration
	ErrNotAuthenticated = errors.New("storage client is not authenticated")
	// ErrNoCurrentSpace is returned when an upload is attempted without a current space
	ErrNoCurrentSpace = errors.New("no current space")
)

// Space is a namespace on the storage network that groups uploads
type Space struct {
	DID  domain.DID `json:"did"`
	Name string     `json:"name"`

	// signer is only known for spaces created by this agent
	signer ed25519.PrivateKey
}

// Client defines the storage network operations used by the storage session
//
//go:generate mockgen -source=client.go -destination=../../mocks/w3up_client.go -package=mocks -mock_names=Client=MockW3upClient,Factory=MockW3upFactory
type Client interface {
	// Agent returns the DID of the local agent identity
	Agent() domain.DID
	// Login authenticates the agent as the account of the given email
	Login(ctx context.Context, email string) error
	// RequestProof requests a registration proof for the given email
	RequestProof(ctx context.Context, email string) (string, error)
	// Register registers the account with a proof and authenticates the agent
	Register(ctx context.Context, proof string) error
	// Spaces lists the spaces provisioned to the account
	Spaces(ctx context.Context) ([]Space, error)
	// CreateSpace creates a new space locally; it is not usable until saved
	CreateSpace(ctx context.Context, name string) (*Space, error)
	// SaveSpace provisions a space to the account
	SaveSpace(ctx context.Context, space *Space) error
	// SetCurrentSpace selects the space that receives uploads
	SetCurrentSpace(space Space)
	// CurrentSpace returns the selected space, nil if none
	CurrentSpace() *Space
	// UploadFile uploads content into the current space and returns its CID
	UploadFile(ctx context.Context, name string, contentType string, r io.Reader) (cid.Cid, error)
}

// Factory creates storage clients
type Factory interface {
	New(ctx context.Context) (Client, error)
}

// Config holds the storage service settings
type Config struct {
	ServiceURL string
}

type factory struct {
	config     Config
	httpClient adapter.HTTPClient
	json       adapter.JSON
}

// NewFactory creates a factory of clients for the service at cfg.ServiceURL
func NewFactory(cfg Config, httpClient adapter.HTTPClient, jsonAdapter adapter.JSON) Factory {
	return &factory{
		config:     cfg,
		httpClient: httpClient,
		json:       jsonAdapter,
	}
}

// New creates a client with a fresh agent identity after checking the service is reachable
func (f *factory) New(ctx context.Context) (Client, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate agent key: %w", err)
	}

	baseURL := strings.TrimSuffix(f.config.ServiceURL, "/")
	if _, err := f.httpClient.GetBytes(ctx, baseURL+"/health", nil); err != nil {
		return nil, fmt.Errorf("storage service unavailable: %w", err)
	}

	agent := domain.NewKeyDID(pub)
	logger.InfoCtx(ctx, "Created storage client", zap.String("agent", agent.String()))

	return &client{
		baseURL:    baseURL,
		agent:      agent,
		agentKey:   priv,
		httpClient: f.httpClient,
		json:       f.json,
	}, nil
}

type client struct {
	baseURL    string
	agent      domain.DID
	agentKey   ed25519.PrivateKey
	httpClient adapter.HTTPClient
	json       adapter.JSON

	mu           sync.RWMutex
	token        string
	currentSpace *Space
}

type accountRequest struct {
	Email string     `json:"email,omitempty"`
	Proof string     `json:"proof,omitempty"`
	Agent domain.DID `json:"agent"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type proofResponse struct {
	Proof string `json:"proof"`
}

type spacesResponse struct {
	Spaces []Space `json:"spaces"`
}

type saveSpaceRequest struct {
	DID   domain.DID `json:"did"`
	Name  string     `json:"name"`
	Agent domain.DID `json:"agent"`
	// Signature is the space key's signature over the agent DID, base58btc encoded
	Signature string `json:"signature"`
}

type uploadResponse struct {
	CID string `json:"cid"`
}

func (c *client) Agent() domain.DID {
	return c.agent
}

// Login authenticates the agent as the account of the given email
func (c *client) Login(ctx context.Context, email string) error {
	var resp tokenResponse
	if err := c.post(ctx, "/account/login", accountRequest{Email: email, Agent: c.agent}, false, &resp); err != nil {
		return fmt.Errorf("failed to login: %w", err)
	}

	c.setToken(resp.Token)
	return nil
}

// RequestProof requests a registration proof for the given email
func (c *client) RequestProof(ctx context.Context, email string) (string, error) {
	var resp proofResponse
	if err := c.post(ctx, "/account/proof", accountRequest{Email: email, Agent: c.agent}, false, &resp); err != nil {
		return "", fmt.Errorf("failed to request proof: %w", err)
	}
	if resp.Proof == "" {
		return "", errors.New("storage service returned an empty proof")
	}

	return resp.Proof, nil
}

// Register registers the account with a proof and authenticates the agent
func (c *client) Register(ctx context.Context, proof string) error {
	var resp tokenResponse
	if err := c.post(ctx, "/account/register", accountRequest{Proof: proof, Agent: c.agent}, false, &resp); err != nil {
		return fmt.Errorf("failed to register: %w", err)
	}

	c.setToken(resp.Token)
	return nil
}

// Spaces lists the spaces provisioned to the account
func (c *client) Spaces(ctx context.Context) ([]Space, error) {
	headers, err := c.authHeaders()
	if err != nil {
		return nil, err
	}

	body, err := c.httpClient.GetBytes(ctx, c.baseURL+"/spaces", headers)
	if err != nil {
		return nil, fmt.Errorf("failed to list spaces: %w", classify(err))
	}

	var resp spacesResponse
	if err := c.json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode spaces: %w", err)
	}

	return resp.Spaces, nil
}

// CreateSpace creates a space with its own ed25519 key
func (c *client) CreateSpace(ctx context.Context, name string) (*Space, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate space key: %w", err)
	}

	space := &Space{
		DID:    domain.NewKeyDID(pub),
		Name:   name,
		signer: priv,
	}
	logger.InfoCtx(ctx, "Created storage space", zap.String("space", space.DID.String()), zap.String("name", name))

	return space, nil
}

// SaveSpace provisions a space to the account
func (c *client) SaveSpace(ctx context.Context, space *Space) error {
	if space == nil || !space.DID.Valid() {
		return errors.New("invalid space")
	}
	if space.signer == nil {
		return fmt.Errorf("space %s was not created by this agent", space.DID)
	}

	req := saveSpaceRequest{
		DID:       space.DID,
		Name:      space.Name,
		Agent:     c.agent,
		Signature: base58.Encode(ed25519.Sign(space.signer, []byte(c.agent))),
	}
	if err := c.post(ctx, "/spaces", req, true, nil); err != nil {
		return fmt.Errorf("failed to save space: %w", err)
	}

	return nil
}

func (c *client) SetCurrentSpace(space Space) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currentSpace = &space
}

func (c *client) CurrentSpace() *Space {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.currentSpace == nil {
		return nil
	}
	space := *c.currentSpace
	return &space
}

// UploadFile uploads content into the current space and returns its CID
func (c *client) UploadFile(ctx context.Context, name string, contentType string, r io.Reader) (cid.Cid, error) {
	space := c.CurrentSpace()
	if space == nil {
		return cid.Undef, ErrNoCurrentSpace
	}

	headers, err := c.authHeaders()
	if err != nil {
		return cid.Undef, err
	}
	headers["X-Agent-Signature"] = base58.Encode(ed25519.Sign(c.agentKey, []byte(name)))

	uploadURL := fmt.Sprintf("%s/spaces/%s/uploads?name=%s",
		c.baseURL, url.PathEscape(space.DID.String()), url.QueryEscape(name))

	body, err := c.httpClient.PostBytes(ctx, uploadURL, contentType, headers, r)
	if err != nil {
		return cid.Undef, fmt.Errorf("failed to upload %s: %w", name, classify(err))
	}

	var resp uploadResponse
	if err := c.json.Unmarshal(body, &resp); err != nil {
		return cid.Undef, fmt.Errorf("failed to decode upload response: %w", err)
	}

	id, err := cid.Decode(resp.CID)
	if err != nil {
		return cid.Undef, fmt.Errorf("storage service returned an invalid CID %q: %w", resp.CID, err)
	}

	return id, nil
}

// post sends a JSON body and decodes the JSON response into out when out is not nil
func (c *client) post(ctx context.Context, path string, payload interface{}, authenticated bool, out interface{}) error {
	headers := map[string]string{}
	if authenticated {
		var err error
		if headers, err = c.authHeaders(); err != nil {
			return err
		}
	}

	data, err := c.json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	body, err := c.httpClient.PostBytes(ctx, c.baseURL+path, "application/json", headers, bytes.NewReader(data))
	if err != nil {
		return classify(err)
	}

	if out == nil {
		return nil
	}
	if err := c.json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

func (c *client) setToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *client) authHeaders() (map[string]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.token == "" {
		return nil, ErrNotAuthenticated
	}

	return map[string]string{
		"Authorization": "Bearer " + c.token,
		"X-Agent-DID":   c.agent.String(),
	}, nil
}

// classify maps authentication failures to ErrUnauthorized
func classify(err error) error {
	switch adapter.StatusCode(err) {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %w", ErrUnauthorized, err)
	default:
		return err
	}
}
