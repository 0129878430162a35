package drive

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

const folderMimeType = "application/vnd.google-apps.folder"

// Service keeps ledger blobs as JSON files inside one Google Drive folder.
type Service struct {
	srv        *drive.Service
	folderPath string
	folderID   string
}

func NewService(ctx context.Context, credentialsJSON, folderPath string) (*Service, error) {
	if strings.TrimSpace(credentialsJSON) == "" {
		return nil, fmt.Errorf("drive credentials must be provided")
	}

	config, err := google.JWTConfigFromJSON([]byte(credentialsJSON), drive.DriveFileScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse service account credentials: %w", err)
	}

	srv, err := drive.NewService(ctx, option.WithHTTPClient(config.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve Drive client: %w", err)
	}

	return &Service{srv: srv, folderPath: folderPath}, nil
}

func (s *Service) Load(ctx context.Context, key string) ([]byte, bool, error) {
	fileID, err := s.findFile(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if fileID == "" {
		return nil, false, nil
	}

	resp, err := s.srv.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, false, fmt.Errorf("unable to download %s: %w", key, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, fmt.Errorf("unable to read %s: %w", key, err)
	}
	return data, true, nil
}

func (s *Service) Save(ctx context.Context, key string, data []byte) error {
	fileID, err := s.findFile(ctx, key)
	if err != nil {
		return err
	}

	if fileID != "" {
		_, err = s.srv.Files.Update(fileID, &drive.File{}).
			Media(bytes.NewReader(data)).
			Context(ctx).
			Do()
		if err != nil {
			return fmt.Errorf("unable to update %s: %w", key, err)
		}
		return nil
	}

	folderID, err := s.folder(ctx)
	if err != nil {
		return err
	}

	created, err := s.srv.Files.Create(&drive.File{
		Name:     fileName(key),
		Parents:  []string{folderID},
		MimeType: "application/json",
	}).Media(bytes.NewReader(data)).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("unable to create %s: %w", key, err)
	}

	log.Info().Str("file_id", created.Id).Str("key", key).Msg("created ledger file on drive")
	return nil
}

// FindFolderByPath walks a slash separated folder path from the Drive root.
func (s *Service) FindFolderByPath(ctx context.Context, path string) (string, error) {
	if path == "" {
		return "root", nil
	}

	currentID := "root"
	for _, folder := range strings.Split(path, "/") {
		if folder == "" {
			continue
		}

		result, err := s.srv.Files.List().
			Q(fmt.Sprintf("'%s' in parents and name='%s' and mimeType='%s' and trashed=false",
				currentID, escapeQuery(folder), folderMimeType)).
			Fields("files(id, name)").
			Context(ctx).
			Do()
		if err != nil {
			return "", fmt.Errorf("error finding folder %s: %w", folder, err)
		}

		if len(result.Files) == 0 {
			return "", fmt.Errorf("folder not found: %s", folder)
		}

		currentID = result.Files[0].Id
	}

	return currentID, nil
}

func (s *Service) folder(ctx context.Context) (string, error) {
	if s.folderID != "" {
		return s.folderID, nil
	}
	id, err := s.FindFolderByPath(ctx, s.folderPath)
	if err != nil {
		return "", err
	}
	s.folderID = id
	return id, nil
}

func (s *Service) findFile(ctx context.Context, key string) (string, error) {
	folderID, err := s.folder(ctx)
	if err != nil {
		return "", err
	}

	result, err := s.srv.Files.List().
		Q(fmt.Sprintf("'%s' in parents and name='%s' and trashed=false", folderID, escapeQuery(fileName(key)))).
		Fields("files(id, name, modifiedTime)").
		OrderBy("modifiedTime desc").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("unable to list files: %w", err)
	}
	if len(result.Files) == 0 {
		return "", nil
	}
	return result.Files[0].Id, nil
}

func fileName(key string) string {
	if strings.HasSuffix(key, ".json") {
		return key
	}
	return key + ".json"
}

func escapeQuery(v string) string {
	return strings.ReplaceAll(strings.ReplaceAll(v, `\`, `\\`), `'`, `\'`)
}
