package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"kanam-academy-backend/internal/domain"
	"kanam-academy-backend/pkg/contactform"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	out          io.Writer
	newTransport func(endpoint string) contactform.Transport
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  send -name NAME -email EMAIL -message TEXT [-role ROLE] [-topic TOPIC] [-field key=value]... [-endpoint URL] - submit the contact form")
	fmt.Fprintln(cli.out, "  topics [-role ROLE] - list help topics per role")
}

// fieldFlags collects repeated -field key=value pairs.
type fieldFlags [][2]string

func (f *fieldFlags) String() string {
	parts := make([]string, 0, len(*f))
	for _, kv := range *f {
		parts = append(parts, kv[0]+"="+kv[1])
	}
	return strings.Join(parts, ",")
}

func (f *fieldFlags) Set(s string) error {
	key, value, ok := strings.Cut(s, "=")
	if !ok || key == "" {
		return fmt.Errorf("field must be key=value (got %q)", s)
	}
	*f = append(*f, [2]string{key, value})
	return nil
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	sendCmd := flag.NewFlagSet("send", flag.ContinueOnError)
	sendCmd.SetOutput(cli.out)
	sendName := sendCmd.String("name", "", "Your name.")
	sendEmail := sendCmd.String("email", "", "Where we should reply.")
	sendMessage := sendCmd.String("message", "", "Your message.")
	sendRole := sendCmd.String("role", string(domain.RoleParentGuardian), "One of parent_guardian, educator_school, program_partner, other.")
	sendTopic := sendCmd.String("topic", "", "Help topic (defaults to the role's first topic).")
	sendEndpoint := sendCmd.String("endpoint", contactform.DefaultEndpoint, "Submission URL.")
	var sendFields fieldFlags
	sendCmd.Var(&sendFields, "field", "Optional detail as key=value, e.g. learnerAge=9. Repeatable.")

	topicsCmd := flag.NewFlagSet("topics", flag.ContinueOnError)
	topicsCmd.SetOutput(cli.out)
	topicsRole := topicsCmd.String("role", "", "Only list this role.")

	switch args[1] {
	case "send":
		if err := sendCmd.Parse(args[2:]); err != nil {
			return err
		}
		composer := contactform.NewComposer(cli.newTransport(*sendEndpoint), contactform.NewWriterNotifier(cli.out))

		// role first: it resets the topic
		updates := [][2]string{
			{contactform.FieldRole, *sendRole},
			{contactform.FieldName, *sendName},
			{contactform.FieldEmail, *sendEmail},
			{contactform.FieldMessage, *sendMessage},
		}
		if *sendTopic != "" {
			updates = append(updates, [2]string{contactform.FieldHelpTopic, *sendTopic})
		}
		updates = append(updates, sendFields...)
		for _, u := range updates {
			if err := composer.UpdateField(u[0], u[1]); err != nil {
				return err
			}
		}

		if !composer.Validate() {
			sendCmd.Usage()
			return errHelp
		}
		return cli.submit(composer)
	case "topics":
		if err := topicsCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.printTopics(*topicsRole)
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) submit(composer *contactform.Composer) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return composer.Submit(ctx)
}

func (cli *commandLine) printTopics(role string) error {
	roles := domain.Roles
	if role != "" {
		r := domain.Role(role)
		if !r.Valid() {
			return fmt.Errorf("unknown role %q", role)
		}
		roles = []domain.Role{r}
	}

	for _, r := range roles {
		fmt.Fprintf(cli.out, "%s (%s)\n", r.Label(), r)
		for i, topic := range r.HelpTopics() {
			suffix := ""
			if i == 0 {
				suffix = " [default]"
			}
			fmt.Fprintf(cli.out, "  - %s%s\n", topic, suffix)
		}
	}
	return nil
}
