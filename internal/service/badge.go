package service

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	qrcode "github.com/skip2/go-qrcode"
)

// BadgeQR renders a QR image carrying the employee id, used to print a
// fallback badge when a card reader is unavailable.
func BadgeQR(employeeID string) (string, error) {
	if employeeID == "" {
		return "", errors.New("employee id is empty")
	}

	targetPath := filepath.Join(baseDir, "badges")
	if _, err := os.Stat(targetPath); errors.Is(err, os.ErrNotExist) {
		if err = os.MkdirAll(targetPath, os.ModePerm); err != nil {
			return "", err
		}
	}

	path := filepath.Join(targetPath, fmt.Sprintf("%s.png", employeeID))
	if err := qrcode.WriteFile(employeeID, qrcode.Medium, 256, path); err != nil {
		return "", fmt.Errorf("error generating badge qr: %w", err)
	}

	return path, nil
}
