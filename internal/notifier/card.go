package notifier

// buildReservationCard assembles the Teams message envelope around an
// Adaptive Card (schema 1.4) describing the reservation.
func buildReservationCard(notice Notice) map[string]any {
	body := []map[string]any{
		textBlock("Meeting Room Reservation", "large", "bolder", "", false),
		textBlock("Room: "+notice.RoomName, "medium", "bolder", "accent", true),
		textBlock("Title: "+notice.Title, "", "", "", false),
		textBlock("Time: "+notice.TimeRange, "", "", "", false),
		textBlock("Booked by: "+notice.UserName, "", "", "", false),
	}
	if notice.Attendees != "" {
		body = append(body, textBlock("Attendees: "+notice.Attendees, "", "", "", false))
	}

	card := map[string]any{
		"$schema": "http://adaptivecards.io/schemas/adaptive-card.json",
		"type":    "AdaptiveCard",
		"version": "1.4",
		"body":    body,
	}

	return map[string]any{
		"type": "message",
		"attachments": []map[string]any{
			{
				"contentType": "application/vnd.microsoft.card.adaptive",
				"content":     card,
			},
		},
	}
}

func textBlock(text, size, weight, color string, separator bool) map[string]any {
	block := map[string]any{
		"type": "TextBlock",
		"text": text,
		"wrap": true,
	}
	if size != "" {
		block["size"] = size
	}
	if weight != "" {
		block["weight"] = weight
	}
	if color != "" {
		block["color"] = color
	}
	if separator {
		block["separator"] = true
	}
	return block
}
