package ui

type (
	PageArtifact struct {
		ID            string
		Secret        string
		ExpiresAt     string
		Placeholder   string
		ExpiredNotice string
	}
)
