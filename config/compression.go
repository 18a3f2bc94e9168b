package config

// CompressionFlag selects the item flag written when a caller asks for compression.
type CompressionFlag string

const (
	// FlagNone writes compressed-on-request items as plain ones.
	FlagNone CompressionFlag = "none"
	// FlagCompressed marks items for zlib compression in the store client.
	FlagCompressed CompressionFlag = "compressed"
)

// CompressionCfg
//   - Supported levels:
//     CompressNoCompression      = 0
//     CompressBestSpeed          = 1
//     CompressBestCompression    = 9
//     CompressDefaultCompression = -1 // zlib.DefaultCompression
//     CompressHuffmanOnly        = -2 // zlib.HuffmanOnly
//
// Compression is applied only to writes that request it explicitly.
type CompressionCfg struct {
	Flag  CompressionFlag `yaml:"flag"`
	Level int             `yaml:"level"`
}

func (cfg *CompressionCfg) Enabled() bool {
	return cfg != nil && cfg.Flag == FlagCompressed
}
