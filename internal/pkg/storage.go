package pkg

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// 上传文件扩展名白名单
var (
	ImageExtensions = []string{".jpg", ".jpeg", ".png"}
	VideoExtensions = []string{".mp4", ".webm", ".mov"}
)

type FileStorage struct {
	// 本地根目录，例如 ./uploads
	Root string
}

func NewFileStorage(root string) *FileStorage {
	return &FileStorage{Root: root}
}

func extAllowed(ext string, allowed []string) bool {
	for _, a := range allowed {
		if ext == a {
			return true
		}
	}
	return false
}

// Save 校验扩展名后落盘，返回稳定的相对路径（入库用）
// 文件名用 uuid，避免覆盖冲突
func (s *FileStorage) Save(file *multipart.FileHeader, subdir string, allowed []string) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !extAllowed(ext, allowed) {
		return "", Validationf("file extension %s not allowed", ext)
	}

	name := uuid.NewString() + ext
	dir := filepath.Join(s.Root, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return "/" + filepath.ToSlash(filepath.Join(subdir, name)), nil
}

// Remove 删除旧文件；路径为空或文件不存在都静默成功
func (s *FileStorage) Remove(relPath string) error {
	if relPath == "" {
		return nil
	}
	p := filepath.Join(s.Root, strings.TrimPrefix(relPath, "/"))
	err := os.Remove(p)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
