package repo

import (
	"encoding/json"
	"fmt"
	"os"

	"lendsqr-admin/internal/domain"
)

// LoadSeed 读取 JSON 数组形式的用户种子数据
func LoadSeed(path string) ([]domain.User, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}
	var users []domain.User
	if err := json.Unmarshal(b, &users); err != nil {
		return nil, fmt.Errorf("parse seed %s: %w", path, err)
	}
	for i := range users {
		if users[i].Guarantors == nil {
			users[i].Guarantors = []domain.Guarantor{}
		}
	}
	return users, nil
}
