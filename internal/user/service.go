// Package user はユーザー識別のドメインロジックを提供する。
package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hitoshi/projman/internal/model"
	"github.com/hitoshi/projman/internal/repository"
)

// Service はTelegramの発信者情報を永続的なUserレコードへ解決する。
// 認可の概念は持たない（許可リストの判定はauth.Gateが行う）。
type Service struct {
	userRepo repository.UserRepository
}

// NewService はServiceを生成する。
func NewService(userRepo repository.UserRepository) *Service {
	return &Service{userRepo: userRepo}
}

// Resolve はTelegramの発信者情報をUserレコードへ解決する。
// 未登録の場合はis_active=trueで新規作成する。登録済みの場合は
// 表示情報を比較し、1つでも差分があるときだけ更新を永続化する。
func (s *Service) Resolve(ctx context.Context, tu model.TelegramUser) (*model.User, error) {
	existing, err := s.userRepo.FindByTelegramID(ctx, tu.TelegramID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}

	if existing == nil {
		newUser := &model.User{
			TelegramID:   tu.TelegramID,
			Username:     tu.Username,
			FirstName:    tu.FirstName,
			LastName:     tu.LastName,
			LanguageCode: tu.LanguageCode,
			IsActive:     true,
		}
		if err := s.userRepo.Create(ctx, newUser); err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		slog.Info("created new user",
			slog.Int64("telegram_id", newUser.TelegramID),
			slog.String("username", newUser.Username),
		)
		return newUser, nil
	}

	return s.updateIfChanged(ctx, existing, tu)
}

// updateIfChanged は表示情報に差分がある場合のみ更新を永続化する。
// 差分がない場合の冗長な書き込みを避ける。
func (s *Service) updateIfChanged(ctx context.Context, existing *model.User, tu model.TelegramUser) (*model.User, error) {
	changed := false

	if existing.Username != tu.Username {
		existing.Username = tu.Username
		changed = true
	}
	if existing.FirstName != tu.FirstName {
		existing.FirstName = tu.FirstName
		changed = true
	}
	if existing.LastName != tu.LastName {
		existing.LastName = tu.LastName
		changed = true
	}
	if existing.LanguageCode != tu.LanguageCode {
		existing.LanguageCode = tu.LanguageCode
		changed = true
	}

	if changed {
		if err := s.userRepo.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to update user: %w", err)
		}
		slog.Debug("updated user info",
			slog.Int64("telegram_id", existing.TelegramID),
		)
	}

	return existing, nil
}

// Deactivate はユーザーを無効化する。レコードは削除されない。
func (s *Service) Deactivate(ctx context.Context, userID int64) error {
	if err := s.userRepo.UpdateActive(ctx, userID, false); err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}
	slog.Info("deactivated user", slog.Int64("user_id", userID))
	return nil
}

// Activate は無効化されたユーザーを再有効化する。
func (s *Service) Activate(ctx context.Context, userID int64) error {
	if err := s.userRepo.UpdateActive(ctx, userID, true); err != nil {
		return fmt.Errorf("failed to activate user: %w", err)
	}
	slog.Info("activated user", slog.Int64("user_id", userID))
	return nil
}
