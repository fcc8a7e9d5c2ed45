package ratelimit

import "github.com/danielgtaylor/huma/v2"

// Scope buckets a request for rate limiting.
type Scope string

const (
	// ScopeGlobal applies to every request.
	ScopeGlobal Scope = "global"
	// ScopeRead covers GET/HEAD/OPTIONS (card views, availability checks).
	ScopeRead Scope = "read"
	// ScopeWrite covers mutations (claims, profile updates).
	ScopeWrite Scope = "write"
)

// MetadataKey stores per-endpoint rate limit config in huma operation
// metadata.
const MetadataKey = "rateLimit"

// EndpointConfig overrides rate limiting for one endpoint. When Limits is
// set those budgets replace the policy entirely; otherwise Scope (if set)
// overrides method-based detection; Disabled skips limiting.
type EndpointConfig struct {
	Scope    Scope
	Limits   []LimitConfig
	Disabled bool
}

// ScopeResolver decides which scopes a request falls under.
type ScopeResolver interface {
	Resolve(ctx huma.Context) []Scope
}

// MethodScopeResolver classifies by HTTP method.
type MethodScopeResolver struct{}

// NewMethodScopeResolver creates a method-based resolver.
func NewMethodScopeResolver() *MethodScopeResolver {
	return &MethodScopeResolver{}
}

// Resolve returns global plus read or write depending on method.
func (r *MethodScopeResolver) Resolve(ctx huma.Context) []Scope {
	scopes := []Scope{ScopeGlobal}

	switch ctx.Method() {
	case "GET", "HEAD", "OPTIONS":
		scopes = append(scopes, ScopeRead)
	default:
		scopes = append(scopes, ScopeWrite)
	}

	return scopes
}

// OperationScopeResolver prefers the scope declared in operation metadata,
// falling back to method-based detection.
type OperationScopeResolver struct {
	fallback *MethodScopeResolver
}

// NewOperationScopeResolver creates a metadata-aware resolver.
func NewOperationScopeResolver() *OperationScopeResolver {
	return &OperationScopeResolver{
		fallback: NewMethodScopeResolver(),
	}
}

// Resolve checks operation metadata first.
func (r *OperationScopeResolver) Resolve(ctx huma.Context) []Scope {
	cfg := GetEndpointConfig(ctx)
	if cfg == nil || cfg.Scope == "" {
		return r.fallback.Resolve(ctx)
	}

	return []Scope{ScopeGlobal, cfg.Scope}
}

// GetEndpointConfig extracts the per-endpoint config, if declared.
func GetEndpointConfig(ctx huma.Context) *EndpointConfig {
	op := ctx.Operation()
	if op == nil || op.Metadata == nil {
		return nil
	}

	cfg, ok := op.Metadata[MetadataKey].(EndpointConfig)
	if !ok {
		return nil
	}

	return &cfg
}
