package cli

import (
	"context"
	"slices"

	"github.com/dmitrijs2005/dessertcatalog/internal/client/export"
	"github.com/dmitrijs2005/dessertcatalog/internal/client/models"
	"github.com/spf13/cobra"
)

// newBuilder seeds an export builder with the stored user's company
// details. A missing or unreadable session just means no defaults.
func (a *App) newBuilder(ctx context.Context) *export.Builder {
	user, err := a.auth.StoredUser(ctx)
	if err != nil {
		a.log.Warn(ctx, "cannot read stored user", "error", err)
	}
	return export.NewBuilder(user)
}

// Export renders ids with b and writes the PDF to dest.
func (a *App) Export(ctx context.Context, b *export.Builder, ids []int64, dest string) error {
	dst, name, err := a.resolveSink(ctx, dest)
	if err != nil {
		return err
	}
	location, err := a.exporter.Export(ctx, b, ids, dst, name)
	if err != nil {
		return err
	}
	a.success("Exported %d dessert(s) to %s", len(slices.Compact(slices.Sorted(slices.Values(ids)))), location)
	return nil
}

func (a *App) printTemplates(current models.Template) {
	rows := make([][]string, 0, 4)
	for _, t := range models.Templates() {
		mark := ""
		if t.ID == current {
			mark = "*"
		}
		rows = append(rows, []string{mark, string(t.ID), t.Name, t.Description})
	}
	a.table([]string{"", "id", "name", "description"}, rows)
}

func newTemplatesCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List the PDF templates",
		Args:  cobra.NoArgs,
		Run: func(*cobra.Command, []string) {
			rt.app.printTemplates(models.TemplateMinimal)
		},
	}
}

func newExportCmd(rt *runtime) *cobra.Command {
	var (
		template                                string
		noIngredients, noNutrition, noTitlePage bool
		company, contact, logo                  string
		dest                                    string
	)

	cmd := &cobra.Command{
		Use:   "export <id>...",
		Short: "Export desserts to a PDF catalog",
		Long: `Export desserts to a PDF catalog.

Ids may be given as separate arguments or comma lists. The destination is
a file, a directory (ending in /) or s3://bucket/key; by default the PDF is
written to the export directory as catalog.pdf.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}

			a := rt.app
			ctx := cmd.Context()
			b := a.newBuilder(ctx)

			fs := cmd.Flags()
			if fs.Changed("template") {
				t, err := export.ParseTemplate(template)
				if err != nil {
					return err
				}
				if err := b.WithTemplate(t); err != nil {
					return err
				}
			}
			b.IncludeIngredients(!noIngredients).
				IncludeNutrition(!noNutrition).
				IncludeTitlePage(!noTitlePage)
			if fs.Changed("company") {
				b.WithCompanyName(company)
			}
			if fs.Changed("contact") {
				b.WithManagerContact(contact)
			}
			if fs.Changed("logo") {
				b.WithLogoURL(logo)
			}

			return a.Export(ctx, b, ids, dest)
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&template, "template", string(models.TemplateMinimal), "minimal, classic, modern or luxury")
	fs.BoolVar(&noIngredients, "no-ingredients", false, "leave out ingredients")
	fs.BoolVar(&noNutrition, "no-nutrition", false, "leave out nutrition facts")
	fs.BoolVar(&noTitlePage, "no-title-page", false, "leave out the title page")
	fs.StringVar(&company, "company", "", "company name on the title page")
	fs.StringVar(&contact, "contact", "", "manager contact on the title page")
	fs.StringVar(&logo, "logo", "", "logo URL on the title page")
	fs.StringVarP(&dest, "dest", "o", "", "output file, directory or s3:// URL")
	return cmd
}
