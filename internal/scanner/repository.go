package scanner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"codemetrics/internal/model"
)

// 仓库扫描相关的哨兵错误。
var (
	ErrEmptyRepository   = errors.New("repository url is empty")
	ErrInvalidRepository = errors.New("repository url must not start with '-'")
	ErrCloneFailed       = errors.New("git clone failed")
)

// ScanRepository 把远程仓库浅克隆到临时目录后扫描，无论成功与否都会删除临时目录。
// 结果中的 ScannedPath 为仓库地址，文件路径相对仓库根目录。
func (s *Service) ScanRepository(ctx context.Context, repositoryURL string) (model.ScanResult, error) {
	var result model.ScanResult

	url := strings.TrimSpace(repositoryURL)
	if url == "" {
		return result, ErrEmptyRepository
	}
	if strings.HasPrefix(url, "-") {
		return result, fmt.Errorf("%w: %q", ErrInvalidRepository, url)
	}

	cloneDir, err := os.MkdirTemp(s.options.TempRoot, "codemetrics-repo-*")
	if err != nil {
		return result, fmt.Errorf("create clone directory: %w", err)
	}
	defer func() {
		if removeErr := os.RemoveAll(cloneDir); removeErr != nil {
			s.logger.Warn("remove clone directory failed", "path", cloneDir, "error", removeErr)
		}
	}()

	if err := s.cloneRepository(ctx, url, cloneDir); err != nil {
		return result, err
	}

	result, err = s.ScanPath(ctx, cloneDir)
	if err != nil {
		return result, err
	}
	result.ScannedPath = url
	return result, nil
}

// cloneRepository 调用 git 可执行文件执行克隆。
func (s *Service) cloneRepository(ctx context.Context, url string, destination string) error {
	args := []string{"clone", "--quiet"}
	if s.options.CloneDepth > 0 {
		args = append(args, "--depth", strconv.Itoa(s.options.CloneDepth))
	}
	args = append(args, "--", url, destination)

	s.logger.Info("cloning repository", "url", url, "depth", s.options.CloneDepth)

	command := exec.CommandContext(ctx, s.options.GitBinary, args...)
	command.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")
	output, err := command.CombinedOutput()
	if err != nil {
		message := strings.TrimSpace(string(output))
		if message == "" {
			return fmt.Errorf("%w: %w", ErrCloneFailed, err)
		}
		return fmt.Errorf("%w: %s: %w", ErrCloneFailed, message, err)
	}
	return nil
}
