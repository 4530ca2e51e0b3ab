package persona

import "fmt"

type HelpField struct {
	Name  string
	Value string
}

type Help struct {
	Title       string
	Description string
	Fields      []HelpField
	Footer      string
}

// HelpFor renders the help card with the configured command prefix.
func HelpFor(prefix string) Help {
	return Help{
		Title:       "AislingBot Help",
		Description: "Here are the commands you can use with AislingBot:",
		Fields: []HelpField{
			{
				Name: "General Commands",
				Value: fmt.Sprintf("**%[1]saisling_help**\n"+
					"Displays this help message.\n\n"+
					"**%[1]sset_reaction_threshold <percentage>**\n"+
					"Sets the reaction threshold (0-100%%). Determines how often Aisling reacts to messages with emojis.\n\n"+
					"**%[1]sset_reply_threshold <percentage>**\n"+
					"Sets the reply threshold (0-100%%). Determines how often Aisling randomly replies to messages.\n\n"+
					"_Both threshold commands need the Manage Channels permission in servers._\n\n"+
					"**%[1]sthresholds**\n"+
					"Shows the current thresholds for this channel.\n", prefix),
			},
			{
				Name: "Interaction with Aisling",
				Value: "Aisling will respond to messages that mention her or contain trigger words.\n" +
					"She may also randomly reply or react to messages based on the set thresholds.\n" +
					"To get Aisling's attention, you can mention her or use one of her trigger words.\n",
			},
			{
				Name: "Examples",
				Value: fmt.Sprintf("- **Mentioning Aisling:** `@AislingBot How are you today?`\n"+
					"- **Using a trigger word:** `Aisling, tell me a joke!`\n"+
					"- **Setting reaction threshold:** `%[1]sset_reaction_threshold 50`\n"+
					"- **Setting reply threshold:** `%[1]sset_reply_threshold 20`\n", prefix),
			},
		},
		Footer: "Feel free to reach out if you have any questions!",
	}
}
