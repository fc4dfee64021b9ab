package logging

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
	sentrylogrus "github.com/getsentry/sentry-go/logrus"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
)

// 日志字段中需要提升为 Sentry 标签的键，便于按内容区块和路由筛选事件
var sentryTagFields = []string{"section", "action", "kind", "method", "status"}

// SentrySettings 描述初始化 Sentry 所需的配置。
type SentrySettings struct {
	DSN         string
	Environment string
	Release     string
	// Component 区分 server 与 cmsctl 上报的事件
	Component string
}

// InitSentry 在配置了 DSN 时把 error 及以上级别的日志作为 Sentry 事件上报。
// route 字段成为事件的 transaction，section 等字段成为标签。
// 返回的 flush 函数需要在进程退出前调用。
func InitSentry(logger *logrus.Logger, settings SentrySettings) (func(), error) {
	if settings.DSN == "" {
		return func() {}, nil
	}

	client, err := sentry.NewClient(sentry.ClientOptions{
		Dsn:         settings.DSN,
		Environment: settings.Environment,
		Release:     settings.Release,
		BeforeSend:  promoteTags,
	})
	if err != nil {
		return nil, eris.Wrap(err, "initializing sentry client")
	}

	hub := sentry.NewHub(client, sentry.NewScope())

	hook := sentrylogrus.NewEventHookFromClient([]logrus.Level{
		logrus.ErrorLevel,
		logrus.FatalLevel,
		logrus.PanicLevel,
	}, client)
	hook.SetHubProvider(func() *sentry.Hub { return hub })
	hook.SetKey(sentrylogrus.FieldTransaction, "route")
	if settings.Component != "" {
		hook.AddTags(map[string]string{"component": settings.Component})
	}
	logger.AddHook(hook)

	return func() {
		hub.Flush(2 * time.Second)
	}, nil
}

// promoteTags 把日志附带的区块、动作等字段从 extra 移到 tags
func promoteTags(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
	if event == nil || len(event.Extra) == 0 {
		return event
	}
	for _, key := range sentryTagFields {
		value, ok := event.Extra[key]
		if !ok {
			continue
		}
		if event.Tags == nil {
			event.Tags = make(map[string]string)
		}
		event.Tags[key] = fmt.Sprint(value)
		delete(event.Extra, key)
	}
	return event
}
