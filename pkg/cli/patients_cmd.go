package cli

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newPatientsCmd(client *Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patients",
		Short: "Manage patient records",
	}

	cmd.AddCommand(newPatientsListCmd(client))
	cmd.AddCommand(newPatientsGetCmd(client))
	cmd.AddCommand(newPatientsCreateCmd(client))
	cmd.AddCommand(newPatientsUpdateCmd(client))
	cmd.AddCommand(newPatientsDeleteCmd(client))
	return cmd
}

func newPatientsListCmd(client *Client) *cobra.Command {
	var view string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List patient records",
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch view {
			case "anonymized":
				records, err := client.ListAnonymizedPatients()
				if err != nil {
					return err
				}
				if getOutputFormat(cmd) == "json" {
					return printJSON(records)
				}
				tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tNAME\tCONTACT\tDIAGNOSIS\tCREATED")
				for _, p := range records {
					fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
						p.ID, p.AnonymizedName, p.AnonymizedContact, p.MaskedDiagnosis,
						p.CreatedAt.Format("2006-01-02 15:04"))
				}
				return tw.Flush()
			case "raw":
				records, err := client.ListPatients()
				if err != nil {
					return err
				}
				if getOutputFormat(cmd) == "json" {
					return printJSON(records)
				}
				tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tNAME\tCONTACT\tDIAGNOSIS\tCREATED")
				for _, p := range records {
					fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
						p.ID, p.Name, p.Contact, p.Diagnosis,
						p.CreatedAt.Format("2006-01-02 15:04"))
				}
				return tw.Flush()
			default:
				return fmt.Errorf("unsupported view %q: use 'raw' or 'anonymized'", view)
			}
		},
	}

	cmd.Flags().StringVar(&view, "view", "raw", "Record view (raw, anonymized)")
	return cmd
}

func newPatientsGetCmd(client *Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a single patient record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid patient id %q", args[0])
			}
			p, err := client.GetPatient(id)
			if err != nil {
				return err
			}
			if getOutputFormat(cmd) == "json" {
				return printJSON(p)
			}
			fmt.Printf("ID:        %d\n", p.ID)
			fmt.Printf("Name:      %s\n", p.Name)
			fmt.Printf("Contact:   %s\n", p.Contact)
			fmt.Printf("Diagnosis: %s\n", p.Diagnosis)
			fmt.Printf("Created:   %s\n", p.CreatedAt.Format("2006-01-02 15:04"))
			fmt.Printf("Updated:   %s\n", p.UpdatedAt.Format("2006-01-02 15:04"))
			return nil
		},
	}
	return cmd
}

func patientInputFlags(cmd *cobra.Command, in *PatientInput) {
	cmd.Flags().StringVar(&in.Name, "name", "", "Patient name")
	cmd.Flags().StringVar(&in.Contact, "contact", "", "Patient contact")
	cmd.Flags().StringVar(&in.Diagnosis, "diagnosis", "", "Diagnosis text")
}

func newPatientsCreateCmd(client *Client) *cobra.Command {
	var in PatientInput

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a new patient record",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := client.CreatePatient(in)
			if err != nil {
				return err
			}
			if getOutputFormat(cmd) == "json" {
				return printJSON(map[string]int64{"id": id})
			}
			fmt.Printf("Created patient %d\n", id)
			return nil
		},
	}

	patientInputFlags(cmd, &in)
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("contact")
	_ = cmd.MarkFlagRequired("diagnosis")
	return cmd
}

func newPatientsUpdateCmd(client *Client) *cobra.Command {
	var in PatientInput

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace an existing patient record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid patient id %q", args[0])
			}
			if err := client.UpdatePatient(id, in); err != nil {
				return err
			}
			fmt.Printf("Updated patient %d\n", id)
			return nil
		},
	}

	patientInputFlags(cmd, &in)
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("contact")
	_ = cmd.MarkFlagRequired("diagnosis")
	return cmd
}

func newPatientsDeleteCmd(client *Client) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a patient record",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid patient id %q", args[0])
			}
			if err := client.DeletePatient(id); err != nil {
				return err
			}
			fmt.Printf("Deleted patient %d\n", id)
			return nil
		},
	}
}
