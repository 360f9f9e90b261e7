package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/hitoshi/projman/internal/metrics"
	"github.com/hitoshi/projman/internal/model"
)

// CallbackRouter はインラインキーボードのコールバックを処理する。
// コールバックデータは "action" または "action:id" 形式で、
// 対象プロジェクトIDをデータ自体に持つため、どのメッセージの
// ボタンが押されても正しい対象に対して動作する。
type CallbackRouter struct {
	resolver UserResolver
	projects ProjectService
	sessions SessionService
	sender   Sender
	metrics  metrics.Recorder
}

// NewCallbackRouter はCallbackRouterを生成する。
func NewCallbackRouter(resolver UserResolver, projects ProjectService, sessions SessionService, sender Sender, rec metrics.Recorder) *CallbackRouter {
	return &CallbackRouter{
		resolver: resolver,
		projects: projects,
		sessions: sessions,
		sender:   sender,
		metrics:  rec,
	}
}

// parseCallbackData はコールバックデータをアクションとプロジェクトIDへ
// 分解する。IDを持たないアクションは id=0, hasID=false を返す。
func parseCallbackData(data string) (action string, id int64, hasID bool, err error) {
	action, rest, found := strings.Cut(data, ":")
	if !found {
		return action, 0, false, nil
	}
	id, err = strconv.ParseInt(rest, 10, 64)
	if err != nil {
		return action, 0, false, fmt.Errorf("invalid callback payload: %q", rest)
	}
	return action, id, true, nil
}

// Route はコールバックを解析してアクションごとの処理へ振り分ける。
// ボタンの二重押下や他ユーザーのプロジェクトIDを詰めた不正データも
// ここで弾く。応答（スピナー解除）は結果にかかわらず必ず返す。
func (r *CallbackRouter) Route(ctx context.Context, cb *Callback) {
	defer r.sender.AnswerCallback(cb.ID, "")

	action, id, hasID, err := parseCallbackData(cb.Data)
	if err != nil {
		slog.Warn("malformed callback data",
			slog.String("data", cb.Data),
			slog.String("error", err.Error()),
		)
		r.sender.SendText(cb.ChatID, "無効な操作です。")
		return
	}

	user, err := r.resolver.Resolve(ctx, cb.From)
	if err != nil {
		slog.Error("failed to resolve user",
			slog.Int64("telegram_id", cb.From.TelegramID),
			slog.String("error", err.Error()),
		)
		r.sender.SendText(cb.ChatID, "エラーが発生しました。もう一度お試しください。")
		return
	}

	slog.Debug("routing callback",
		slog.String("action", action),
		slog.Int64("user_id", user.ID),
	)
	r.metrics.RecordCallback(action)

	switch action {
	case ActionSelectProject:
		if !hasID {
			err = model.NewInvalidArgumentError("プロジェクトが指定されていません。")
		} else {
			err = r.selectProject(ctx, cb, user, id)
		}
	case ActionConfirmDelete:
		if !hasID {
			err = model.NewInvalidArgumentError("プロジェクトが指定されていません。")
		} else {
			err = r.confirmDelete(ctx, cb, user, id)
		}
	case ActionCancelDelete:
		// cancel_deleteは引数を取らない。IDが付いたトークンは不正。
		if hasID {
			slog.Debug("unexpected id on cancel token", slog.String("data", cb.Data))
			r.sender.SendText(cb.ChatID, "無効な操作です。")
			return
		}
		r.sender.SendText(cb.ChatID, "削除をキャンセルしました。")
		return
	default:
		slog.Debug("unknown callback action", slog.String("action", action))
		r.sender.SendText(cb.ChatID, "無効な操作です。")
		return
	}

	if err != nil {
		r.reportError(cb.ChatID, action, err)
	}
}

// selectProject は選択ボタンの押下を処理する。対象が存在し、
// 押したユーザーの所有で、かつACTIVEである場合のみ選択する。
func (r *CallbackRouter) selectProject(ctx context.Context, cb *Callback, user *model.User, projectID int64) error {
	project, err := r.projects.FindByID(ctx, projectID)
	if err != nil {
		return err
	}
	if project == nil {
		return model.NewProjectNotFoundError("")
	}
	if project.UserID != user.ID {
		return model.NewForbiddenError()
	}
	if project.Status != model.ProjectStatusActive {
		return model.NewInvalidStateError("アーカイブ済みのプロジェクトは選択できません。先に /unarchive で復元してください。")
	}

	if err := r.sessions.SelectProject(ctx, user.ID, project.ID); err != nil {
		return err
	}

	slog.Info("project selected",
		slog.Int64("user_id", user.ID),
		slog.Int64("project_id", project.ID),
	)
	r.sender.SendText(cb.ChatID, fmt.Sprintf("プロジェクト「%s」を選択しました。", project.Name))
	return nil
}

// confirmDelete は削除確認ボタンの押下を処理する。対象が現在選択中の
// プロジェクトであれば、先にセッションの選択を解除してから削除する。
// この順序により、削除済みプロジェクトを指すポインタが残らない。
func (r *CallbackRouter) confirmDelete(ctx context.Context, cb *Callback, user *model.User, projectID int64) error {
	project, err := r.projects.FindByID(ctx, projectID)
	if err != nil {
		return err
	}
	if project == nil {
		// すでに削除済み。ボタンの二重押下でもここに来る。
		return model.NewProjectNotFoundError("")
	}
	if project.UserID != user.ID {
		return model.NewForbiddenError()
	}

	session, err := r.sessions.GetOrCreate(ctx, user.ID)
	if err != nil {
		return err
	}
	if session.CurrentProjectID != nil && *session.CurrentProjectID == project.ID {
		if err := r.sessions.ClearCurrentProject(ctx, user.ID); err != nil {
			return err
		}
	}

	if err := r.projects.SoftDelete(ctx, project.ID); err != nil {
		return err
	}

	slog.Info("project deleted",
		slog.Int64("user_id", user.ID),
		slog.Int64("project_id", project.ID),
	)
	r.sender.SendText(cb.ChatID, fmt.Sprintf("プロジェクト「%s」を削除しました。", project.Name))
	return nil
}

func (r *CallbackRouter) reportError(chatID int64, action string, err error) {
	if be := model.AsBotError(err); be != nil {
		r.metrics.RecordHandlerError("expected")
		text := be.Message
		if be.Action != "" {
			text += "\n\n" + be.Action
		}
		r.sender.SendText(chatID, text)
		return
	}

	r.metrics.RecordHandlerError("unexpected")
	slog.Error("callback handler failed",
		slog.String("action", action),
		slog.String("error", err.Error()),
	)
	r.sender.SendText(chatID, "エラーが発生しました。もう一度お試しください。")
}
