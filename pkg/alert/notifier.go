package alert

import (
	"fmt"
	"log"
	"sort"
	"strings"

	"WasteNot-Backend/domain"
	"WasteNot-Backend/internal/utils/mailing"
)

type (
	// Notifier delivers one consolidated expiry notice. Implementations
	// must not panic; the returned bool signals success so the lifecycle
	// manager can isolate failures per recipient group.
	Notifier interface {
		SendConsolidatedExpiryNotice(notice domain.ConsolidatedNotice) bool
	}

	mailNotifier struct{}
)

func NewMailNotifier() Notifier {
	return &mailNotifier{}
}

func (n *mailNotifier) SendConsolidatedExpiryNotice(notice domain.ConsolidatedNotice) bool {
	subject := noticeSubject(notice)
	body := renderNoticeBody(notice)

	if err := mailing.SendMail(notice.RecipientEmail, subject, body); err != nil {
		log.Printf("failed to send expiry notice to %s: %v", notice.RecipientEmail, err)
		return false
	}

	return true
}

func noticeSubject(notice domain.ConsolidatedNotice) string {
	if notice.AlertType == domain.AlertTypeExpired {
		if len(notice.Items) == 1 {
			return fmt.Sprintf("WasteNot: %s has expired", notice.Items[0].Name)
		}
		return fmt.Sprintf("WasteNot: %d items have expired", len(notice.Items))
	}

	when := daysText(notice.DaysRemaining)
	if len(notice.Items) == 1 {
		return fmt.Sprintf("WasteNot: %s expires %s", notice.Items[0].Name, when)
	}
	return fmt.Sprintf("WasteNot: %d items expire %s", len(notice.Items), when)
}

func daysText(daysRemaining int) string {
	switch {
	case daysRemaining <= 0:
		return "today"
	case daysRemaining == 1:
		return "tomorrow"
	default:
		return fmt.Sprintf("in %d days", daysRemaining)
	}
}

func renderNoticeBody(notice domain.ConsolidatedNotice) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("<h2>Hi %s,</h2>", notice.RecipientName))
	if notice.AlertType == domain.AlertTypeExpired {
		b.WriteString("<p>The following items in your inventory have expired:</p>")
	} else {
		b.WriteString(fmt.Sprintf("<p>The following items expire <strong>%s</strong> (%s):</p>",
			daysText(notice.DaysRemaining), notice.ExpiryDate.Format("January 2, 2006")))
	}

	for _, category := range groupedCategories(notice.Items) {
		b.WriteString(fmt.Sprintf("<h3>%s</h3><ul>", titleCase(category)))
		for _, item := range notice.Items {
			if item.FoodCategory != category {
				continue
			}
			line := fmt.Sprintf("%s &mdash; freshness %d%%, %s, %s", item.Name, item.Freshness, item.Storage, item.Condition)
			if item.IsCritical {
				b.WriteString(fmt.Sprintf(`<li style="color:#c0392b;font-weight:bold;">%s (use immediately)</li>`, line))
			} else {
				b.WriteString(fmt.Sprintf("<li>%s</li>", line))
			}
		}
		b.WriteString("</ul>")
	}

	if notice.HasCriticalItems {
		b.WriteString("<p><strong>Some of these items need your attention right away.</strong></p>")
	}
	b.WriteString("<p>Open your WasteNot dashboard to update your inventory or find recipe ideas.</p>")

	return b.String()
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func groupedCategories(items []domain.NoticeItem) []string {
	seen := make(map[string]struct{})
	var categories []string
	for _, item := range items {
		if _, ok := seen[item.FoodCategory]; !ok {
			seen[item.FoodCategory] = struct{}{}
			categories = append(categories, item.FoodCategory)
		}
	}
	sort.Strings(categories)
	return categories
}
