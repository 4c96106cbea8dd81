package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"edu-platform/biz/adaptor"
	"edu-platform/biz/application/dto/basic"
	"edu-platform/biz/application/dto/edu"
	"edu-platform/biz/infrastructure/cache"
	"edu-platform/biz/infrastructure/consts"
	"edu-platform/biz/infrastructure/relay"
	"edu-platform/biz/infrastructure/repository/assignment"
	"edu-platform/biz/infrastructure/repository/message"
	"edu-platform/biz/infrastructure/repository/user"
	"edu-platform/biz/infrastructure/util/log"

	"github.com/google/wire"
	"github.com/samber/lo"
)

const (
	messageNotificationPrefix = "message-"
	dueSoonWindow             = 72 * time.Hour
)

type ICommunicationService interface {
	Notifications(ctx context.Context) ([]*edu.Notification, error)
	MarkNotificationRead(ctx context.Context, id string) (*basic.Response, error)
	SendMessage(ctx context.Context, req *edu.SendMessageReq) (*edu.SendMessageResp, error)
	ListMessages(ctx context.Context) ([]*edu.Message, error)
	ChatHistory(ctx context.Context, classID string) ([]*relay.ChatMessage, error)
}

type CommunicationService struct {
	UserMapper       user.IMongoMapper
	AssignmentMapper assignment.IMongoMapper
	MessageMapper    message.IMongoMapper
	History          cache.IClassHistory
}

var CommunicationServiceSet = wire.NewSet(
	wire.Struct(new(CommunicationService), "*"),
	wire.Bind(new(ICommunicationService), new(*CommunicationService)),
)

// Notifications derives the caller's feed from grades, upcoming deadlines,
// achievements and received messages, newest first.
func (s *CommunicationService) Notifications(ctx context.Context) ([]*edu.Notification, error) {
	u, err := adaptor.ExtractUser(ctx)
	if err != nil {
		return nil, err
	}
	list, err := s.collect(ctx, u, time.Now())
	if err != nil {
		log.CtxError(ctx, "Notifications for %s failed: %v", u.ID.Hex(), err)
		return nil, consts.ErrNotifications
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Timestamp.After(list[j].Timestamp)
	})
	if len(list) > consts.NotificationLimit {
		list = list[:consts.NotificationLimit]
	}
	return list, nil
}

func (s *CommunicationService) collect(ctx context.Context, u *user.User, now time.Time) ([]*edu.Notification, error) {
	userID := u.ID.Hex()
	var list []*edu.Notification

	switch u.Role {
	case consts.RoleStudent:
		submitted, err := s.AssignmentMapper.FindByStudent(ctx, userID)
		if err != nil {
			return nil, err
		}
		list = append(list, lo.FilterMap(submitted, func(a *assignment.Assignment, _ int) (*edu.Notification, bool) {
			sub := a.SubmissionOf(userID)
			if sub == nil {
				return nil, false
			}
			return &edu.Notification{
				ID:        "grade-" + sub.ID.Hex(),
				Type:      consts.NotificationGradePosted,
				Title:     "Grade Posted",
				Message:   fmt.Sprintf("Your submission for %s scored %.0f", a.Title, sub.Grade),
				Timestamp: sub.SubmittedAt,
			}, true
		})...)

		enrolled, err := s.AssignmentMapper.FindByCourseIDs(ctx, u.Courses)
		if err != nil {
			return nil, err
		}
		list = append(list, lo.FilterMap(enrolled, func(a *assignment.Assignment, _ int) (*edu.Notification, bool) {
			if a.SubmissionOf(userID) != nil || a.DueDate.Before(now) || a.DueDate.After(now.Add(dueSoonWindow)) {
				return nil, false
			}
			return &edu.Notification{
				ID:        "due-" + a.ID.Hex(),
				Type:      consts.NotificationAssignmentDue,
				Title:     "Assignment Due Soon",
				Message:   fmt.Sprintf("%s is due %s", a.Title, a.DueDate.UTC().Format(time.RFC1123)),
				Timestamp: a.DueDate.Add(-dueSoonWindow),
			}, true
		})...)
	case consts.RoleTeacher:
		owned, err := s.AssignmentMapper.FindByInstructor(ctx, userID)
		if err != nil {
			return nil, err
		}
		list = append(list, lo.FlatMap(owned, func(a *assignment.Assignment, _ int) []*edu.Notification {
			return lo.Map(a.Submissions, func(sub assignment.Submission, _ int) *edu.Notification {
				return &edu.Notification{
					ID:        "submission-" + sub.ID.Hex(),
					Type:      consts.NotificationSubmission,
					Title:     "New Submission",
					Message:   fmt.Sprintf("%s received a submission scored %.0f", a.Title, sub.Grade),
					Timestamp: sub.SubmittedAt,
				}
			})
		})...)
	}

	list = append(list, lo.Map(u.Achievements, func(a user.Achievement, _ int) *edu.Notification {
		return &edu.Notification{
			ID:        "achievement-" + slug(a.Title),
			Type:      consts.NotificationAchievement,
			Title:     "Achievement Unlocked!",
			Message:   fmt.Sprintf("You earned the %q badge", a.Title),
			Timestamp: a.EarnedAt,
		}
	})...)
	for _, n := range list {
		n.Read = lo.Contains(u.ReadNotifications, n.ID)
	}

	msgs, err := s.MessageMapper.FindByParticipant(ctx, userID, consts.MessageLimit)
	if err != nil {
		return nil, err
	}
	list = append(list, lo.FilterMap(msgs, func(m *message.Message, _ int) (*edu.Notification, bool) {
		if m.Recipient != userID {
			return nil, false
		}
		return &edu.Notification{
			ID:        messageNotificationPrefix + m.ID.Hex(),
			Type:      consts.NotificationMessage,
			Title:     "New Message",
			Message:   m.Subject,
			Timestamp: m.CreateTime,
			Read:      m.Read,
		}, true
	})...)
	return list, nil
}

func (s *CommunicationService) MarkNotificationRead(ctx context.Context, id string) (*basic.Response, error) {
	u, err := adaptor.ExtractUser(ctx)
	if err != nil {
		return nil, err
	}
	userID := u.ID.Hex()

	if msgID, ok := strings.CutPrefix(id, messageNotificationPrefix); ok {
		err = s.MessageMapper.MarkRead(ctx, msgID, userID)
		switch {
		case err == nil:
		case errors.Is(err, consts.ErrNotFound), errors.Is(err, consts.ErrInvalidObjectId):
			return nil, consts.ErrNoNotification
		default:
			log.CtxError(ctx, "MarkNotificationRead message %s failed: %v", msgID, err)
			return nil, consts.ErrNotifications
		}
		return &basic.Response{Message: "Notification marked as read"}, nil
	}

	list, err := s.collect(ctx, u, time.Now())
	if err != nil {
		log.CtxError(ctx, "MarkNotificationRead load feed for %s failed: %v", userID, err)
		return nil, consts.ErrNotifications
	}
	if !lo.ContainsBy(list, func(n *edu.Notification) bool { return n.ID == id }) {
		return nil, consts.ErrNoNotification
	}
	if err = s.UserMapper.MarkNotificationRead(ctx, userID, id); err != nil {
		log.CtxError(ctx, "MarkNotificationRead %s for %s failed: %v", id, userID, err)
		return nil, consts.ErrNotifications
	}
	return &basic.Response{Message: "Notification marked as read"}, nil
}

// SendMessage stores a direct message. One side of every conversation must be
// a teacher.
func (s *CommunicationService) SendMessage(ctx context.Context, req *edu.SendMessageReq) (*edu.SendMessageResp, error) {
	u, err := adaptor.ExtractUser(ctx)
	if err != nil {
		return nil, err
	}
	recipient, err := s.UserMapper.FindOne(ctx, req.RecipientID)
	switch {
	case err == nil:
	case errors.Is(err, consts.ErrNotFound), errors.Is(err, consts.ErrInvalidObjectId):
		return nil, consts.ErrUserNotFound
	default:
		log.CtxError(ctx, "SendMessage find recipient %s failed: %v", req.RecipientID, err)
		return nil, consts.ErrSendMessage
	}
	if recipient.ID == u.ID {
		return nil, consts.ErrMessageSelf
	}
	if u.Role != consts.RoleTeacher && recipient.Role != consts.RoleTeacher {
		return nil, consts.ErrMessageRecipient
	}

	msg := &message.Message{
		Sender:    u.ID.Hex(),
		Recipient: recipient.ID.Hex(),
		Subject:   strings.TrimSpace(req.Subject),
		Content:   req.Content,
	}
	if err = s.MessageMapper.Insert(ctx, msg); err != nil {
		log.CtxError(ctx, "SendMessage insert failed: %v", err)
		return nil, consts.ErrSendMessage
	}
	log.CtxInfo(ctx, "SendMessage %s from %s to %s", msg.ID.Hex(), msg.Sender, msg.Recipient)
	return &edu.SendMessageResp{Message: "Message sent successfully", MessageID: msg.ID.Hex()}, nil
}

func (s *CommunicationService) ListMessages(ctx context.Context) ([]*edu.Message, error) {
	u, err := adaptor.ExtractUser(ctx)
	if err != nil {
		return nil, err
	}
	userID := u.ID.Hex()
	msgs, err := s.MessageMapper.FindByParticipant(ctx, userID, consts.MessageLimit)
	if err != nil {
		log.CtxError(ctx, "ListMessages for %s failed: %v", userID, err)
		return nil, consts.ErrGetMessages
	}

	ids := lo.Uniq(lo.FlatMap(msgs, func(m *message.Message, _ int) []string {
		return []string{m.Sender, m.Recipient}
	}))
	people := lo.SliceToMap(ids, func(id string) (string, edu.Participant) {
		return id, s.participant(ctx, id)
	})

	return lo.Map(msgs, func(m *message.Message, _ int) *edu.Message {
		direction := "received"
		if m.Sender == userID {
			direction = "sent"
		}
		return &edu.Message{
			ID:        m.ID.Hex(),
			Sender:    people[m.Sender],
			Recipient: people[m.Recipient],
			Subject:   m.Subject,
			Content:   m.Content,
			Direction: direction,
			Timestamp: m.CreateTime,
			Read:      m.Read,
		}
	}), nil
}

func (s *CommunicationService) participant(ctx context.Context, id string) edu.Participant {
	p, err := s.UserMapper.FindOne(ctx, id)
	if err != nil {
		if !errors.Is(err, consts.ErrNotFound) {
			log.CtxError(ctx, "ListMessages find user %s failed: %v", id, err)
		}
		return edu.Participant{ID: id, Name: "Unknown"}
	}
	return edu.Participant{ID: id, Name: p.Name, Role: p.Role.String()}
}

func (s *CommunicationService) ChatHistory(ctx context.Context, classID string) ([]*relay.ChatMessage, error) {
	if _, err := adaptor.ExtractUser(ctx); err != nil {
		return nil, err
	}
	classID = strings.TrimSpace(classID)
	if classID == "" {
		return nil, consts.ErrInvalidParams
	}
	if s.History == nil {
		return []*relay.ChatMessage{}, nil
	}
	msgs, err := s.History.Recent(ctx, classID, consts.ChatHistoryLimit)
	if err != nil {
		log.CtxError(ctx, "ChatHistory %s failed: %v", classID, err)
		return nil, consts.ErrChatHistory
	}
	return nonNil(msgs), nil
}

func slug(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), "-"))
}
