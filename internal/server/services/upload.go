package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"unicode"

	"github.com/dmitrijs2005/picshare/internal/common"
	"github.com/dmitrijs2005/picshare/internal/filex"
	"github.com/dmitrijs2005/picshare/internal/logging"
	"github.com/dmitrijs2005/picshare/internal/server/storage"
	"golang.org/x/text/unicode/norm"
)

// UploadService stages an uploaded file on local disk and forwards it to
// object storage. The staged copy is removed on every exit path.
type UploadService struct {
	gateway    storage.Gateway
	stagingDir string
	log        logging.Logger
}

func NewUploadService(gateway storage.Gateway, stagingDir string, log logging.Logger) *UploadService {
	return &UploadService{gateway: gateway, stagingDir: stagingDir, log: log}
}

// Upload stores the content of src under the sanitized form of filename and
// returns the key. An empty filename yields common.ErrNoFileSelected, one
// that sanitizes to nothing yields common.ErrValidation. No size or content
// type checks are made.
func (s *UploadService) Upload(ctx context.Context, filename string, src io.Reader) (string, error) {
	if filename == "" {
		return "", common.ErrNoFileSelected
	}

	key := SanitizeFilename(filename)
	if key == "" {
		return "", fmt.Errorf("%w: invalid filename %q", common.ErrValidation, filename)
	}

	staged, err := os.CreateTemp(s.stagingDir, "upload-*-"+key)
	if err != nil {
		return "", fmt.Errorf("error creating staging file: %w", err)
	}
	defer func() {
		_ = staged.Close()
		if _, err := filex.RemoveQuietly(staged.Name()); err != nil {
			s.log.Warn(ctx, "staged upload not removed", "path", staged.Name(), "error", err)
		}
	}()

	if _, err := io.Copy(staged, src); err != nil {
		return "", fmt.Errorf("error staging upload: %w", err)
	}
	if err := staged.Close(); err != nil {
		return "", fmt.Errorf("error staging upload: %w", err)
	}

	if err := s.gateway.PutObject(ctx, key, staged.Name()); err != nil {
		return "", err
	}

	return key, nil
}

var filenameStripRe = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// SanitizeFilename reduces a client-supplied filename to a safe flat key:
// compatibility-decomposed and folded to ASCII, path separators turned into
// word breaks, whitespace runs joined with "_", every other character
// outside [A-Za-z0-9_.-] dropped, and leading or trailing "." and "_"
// trimmed. The result may be empty.
//
//	"../../etc/passwd"   -> "etc_passwd"
//	"My cool movie.mov"  -> "My_cool_movie.mov"
//	"résumé.png"         -> "resume.png"
func SanitizeFilename(name string) string {
	name = norm.NFKD.String(name)
	name = strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, name)

	name = strings.NewReplacer("/", " ", `\`, " ").Replace(name)
	name = strings.Join(strings.Fields(name), "_")
	name = filenameStripRe.ReplaceAllString(name, "")

	return strings.Trim(name, "._")
}
