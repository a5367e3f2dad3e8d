package notionsync

import (
	"time"

	"github.com/jomei/notionapi"

	"github.com/dvloznov/wealthmind/internal/ledger"
)

// TransactionToNotionProperties converts a ledger transaction to Notion
// properties for the transactions database. The Transaction ID rich text
// property is used to track synced entries for idempotency.
func TransactionToNotionProperties(tx ledger.Transaction) notionapi.Properties {
	props := notionapi.Properties{
		"Description": notionapi.TitleProperty{
			Title: []notionapi.RichText{
				{
					Type: notionapi.ObjectTypeText,
					Text: &notionapi.Text{
						Content: tx.Description,
					},
				},
			},
		},
		"Transaction ID": notionapi.RichTextProperty{
			RichText: []notionapi.RichText{
				{
					Type: notionapi.ObjectTypeText,
					Text: &notionapi.Text{
						Content: tx.ID,
					},
				},
			},
		},
		"Amount": notionapi.NumberProperty{
			Number: tx.Amount,
		},
	}

	if tx.Type != "" {
		props["Type"] = notionapi.SelectProperty{
			Select: notionapi.Option{
				Name: string(tx.Type),
			},
		}
	}

	if tx.Category != "" {
		props["Category"] = notionapi.SelectProperty{
			Select: notionapi.Option{
				Name: tx.Category,
			},
		}
	}

	if parsed, err := time.Parse(ledger.DateFormat, tx.Date); err == nil {
		d := notionapi.Date(parsed)
		props["Date"] = notionapi.DateProperty{
			Date: &notionapi.DateObject{
				Start: &d,
			},
		}
	}

	return props
}
