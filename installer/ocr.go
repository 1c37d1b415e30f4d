package installer

import (
	"path/filepath"

	"github.com/rs/zerolog"
)

// ConfigureOCRModel seeds assets/resource/model/ocr from MaaCommonAssets the first time.
// An existing model directory is left alone; a missing MaaCommonAssets checkout is not an error.
func ConfigureOCRModel(root string, logger zerolog.Logger) error {
	src := filepath.Join(root, "assets", "MaaCommonAssets", "OCR", "ppocr_v5", "zh_cn")
	dst := filepath.Join(root, "assets", "resource", "model", "ocr")

	if isDir(dst) {
		logger.Debug().Str("path", dst).Msg("OCR model already configured")
		return nil
	}
	if !isDir(src) {
		logger.Warn().Str("path", src).Msg("MaaCommonAssets not found, OCR model not configured")
		return nil
	}

	if err := copyTree(src, dst); err != nil {
		return err
	}
	logger.Info().Str("from", src).Str("to", dst).Msg("OCR model configured")
	return nil
}
