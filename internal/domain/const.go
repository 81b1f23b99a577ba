package domain

const (
	// Gateway constants
	DEFAULT_IPFS_GATEWAY = "https://ipfs.io"

	// Display constants
	PLACEHOLDER_IMAGE_PATH = "/placeholder.svg?height=200&width=200"

	// Storage constants
	DEFAULT_SPACE_NAME = "nitk-memory-vault"

	// Blockchain constants
	ETHEREUM_ZERO_ADDRESS = "0x0000000000000000000000000000000000000000"

	// Date layouts used by the mint form and the gallery
	DATE_INPUT_LAYOUT   = "2006-01-02"
	DATE_DISPLAY_LAYOUT = "02/01/2006"
)
