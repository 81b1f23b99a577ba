package uri

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ipfs/go-cid"

	"github.com/nitk/memory-vault/internal/domain"
)

// ErrInvalidCID is returned when a content reference does not hold a valid CID
var ErrInvalidCID = errors.New("invalid content identifier")

// Config holds configuration for the URI resolver
type Config struct {
	// IPFSGateway is the public gateway serving stored content
	IPFSGateway string
}

// Resolver defines the interface for resolving content references
//
//go:generate mockgen -source=resolver.go -destination=../mocks/uri_resolver.go -package=mocks -mock_names=Resolver=MockURIResolver
type Resolver interface {
	// Resolve turns a content reference into its public gateway URL.
	// It accepts a bare CID, an ipfs:// URI or an IPFS gateway URL, with an optional path.
	Resolve(ref string) (string, error)
}

type resolver struct {
	gateway string
}

// NewResolver creates a resolver for the configured gateway
func NewResolver(config Config) Resolver {
	gateway := strings.TrimSuffix(config.IPFSGateway, "/")
	if gateway == "" {
		gateway = domain.DEFAULT_IPFS_GATEWAY
	}

	return &resolver{gateway: gateway}
}

func (r *resolver) Resolve(ref string) (string, error) {
	ref = strings.TrimSpace(ref)

	switch {
	case strings.HasPrefix(ref, "ipfs://"):
		ref = strings.TrimPrefix(ref, "ipfs://")
		// ipfs://ipfs/<cid> is a common malformed variant
		ref = strings.TrimPrefix(ref, "ipfs/")
	case strings.Contains(ref, "/ipfs/"):
		ref = ref[strings.Index(ref, "/ipfs/")+len("/ipfs/"):]
	}

	id, path, _ := strings.Cut(ref, "/")
	parsed, err := cid.Decode(id)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidCID, id)
	}

	url := fmt.Sprintf("%s/ipfs/%s", r.gateway, parsed.String())
	if path != "" {
		url += "/" + path
	}

	return url, nil
}
