package llm

import "context"

// Purpose labels why a request was made. It is recorded with every audit
// event and trace span, and `llm list --purpose` filters on it.
type Purpose string

const (
	// PurposeChallengeGen marks challenge generation requests.
	PurposeChallengeGen Purpose = "challenge-gen"

	// PurposeUnlabeled is reported when the caller set no purpose.
	PurposeUnlabeled Purpose = "unlabeled"
)

type purposeKey struct{}

func WithPurpose(ctx context.Context, p Purpose) context.Context {
	return context.WithValue(ctx, purposeKey{}, p)
}

// PurposeFrom returns the purpose set by WithPurpose, or PurposeUnlabeled.
func PurposeFrom(ctx context.Context) Purpose {
	if p, ok := ctx.Value(purposeKey{}).(Purpose); ok && p != "" {
		return p
	}
	return PurposeUnlabeled
}
