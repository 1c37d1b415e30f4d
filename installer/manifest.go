package installer

import (
	"os"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	"github.com/tidwall/jsonc"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// Width 0 keeps every non-empty array on multiple lines.
var manifestStyle = &pretty.Options{
	Width:  0,
	Indent: "    ",
}

// SetManifestVersion rewrites the "version" field of a JSON-with-comments manifest.
// Comments are dropped, key order and non-ASCII text are kept, and the result is
// written back as 4-space indented JSON. It returns the previous version, if any.
func SetManifestVersion(path, version string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrap(err, "read manifest")
	}

	data := jsonc.ToJSON(raw)
	if !gjson.ValidBytes(data) {
		return "", errors.Errorf("manifest %s is not valid JSON", path)
	}
	if !gjson.ParseBytes(data).IsObject() {
		return "", errors.Errorf("manifest %s is not a JSON object", path)
	}
	previous := gjson.GetBytes(data, "version").String()

	data, err = sjson.SetBytes(data, "version", version)
	if err != nil {
		return "", errors.Wrap(err, "set version")
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", errors.Wrap(err, "stat manifest")
	}
	if err := os.WriteFile(path, pretty.PrettyOptions(data, manifestStyle), info.Mode().Perm()); err != nil {
		return "", errors.Wrap(err, "write manifest")
	}
	return previous, nil
}
