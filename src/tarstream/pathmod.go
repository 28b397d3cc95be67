package tarstream

import (
	"path"
	"strings"
)

// PathMod rewrites entry paths below BaseDir to live below ModDir. Its
// FixPath method plugs into Writer.FixPath to rebase archives, typically
// onto "./" so that extraction stays relative.
type PathMod struct {
	BaseDir string
	ModDir  string
}

func (mod PathMod) FixPath(orig string) string {
	if strings.HasPrefix(orig, mod.BaseDir) {
		return strings.Replace(orig, mod.BaseDir, mod.ModDir, 1)
	}
	if orig == mod.BaseDir || orig+"/" == mod.BaseDir {
		return mod.ModDir
	}
	return path.Join(mod.ModDir, orig)
}
