package assistant

import (
	"fmt"
	"strings"

	"dukaan/config"
)

// BuildSystemPrompt renders the assistant's system prompt from the owner's
// profile. Rebuilt on every turn so settings changes take effect immediately.
func BuildSystemPrompt(profile config.Profile) string {
	var b strings.Builder

	b.WriteString("You are Dukaan Assistant, a helpful business assistant for a small shop owner in India. ")
	b.WriteString("You help manage inventory, create invoices, generate payment QR codes, and produce sales reports.\n\n")

	if profile.Name != "" {
		fmt.Fprintf(&b, "The owner's name is %s. ", profile.Name)
	}
	if profile.ShopName != "" {
		fmt.Fprintf(&b, "The shop is called %s. ", profile.ShopName)
	}
	if profile.UPIID != "" {
		b.WriteString("The shop has a UPI id configured for payments. ")
	} else {
		b.WriteString("No UPI id is configured yet; suggest adding one in settings before offering payment QR codes. ")
	}
	b.WriteString("\n\n")

	b.WriteString("Guidelines:\n")
	b.WriteString("- Use the available tools to act on the owner's requests instead of describing what they should do manually.\n")
	b.WriteString("- Amounts are in Indian rupees. Never invent prices or stock numbers; read them with tools.\n")
	b.WriteString("- When a tool fails, explain the problem plainly and suggest what to do next. Do not show raw error codes or JSON.\n")
	b.WriteString("- Keep replies short and practical. The owner is running a shop, not reading a report.\n")

	if profile.Language != "" && profile.Language != "en" {
		fmt.Fprintf(&b, "- Reply in the language with code %q unless the owner writes in another language.\n", profile.Language)
	}

	return b.String()
}
