package releasefeed

// Repository identifies the GitHub repository the releases are read from.
type Repository interface {
	GetSlug() (string, string, error)
	String() string
}
