package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/dessertcatalog/internal/client/models"
	"github.com/spf13/cobra"
)

func (a *App) dessertTable(entries []models.Dessert, selected func(int64) bool) {
	header := []string{"id", "title", "category", "weight", "price", "active"}
	if selected != nil {
		header = append([]string{""}, header...)
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		row := []string{fmt.Sprint(e.ID), e.Title, e.Category, str(e.Weight), num(e.Price), yesNo(e.IsActive)}
		if selected != nil {
			mark := "[ ]"
			if selected(e.ID) {
				mark = "[x]"
			}
			row = append([]string{mark}, row...)
		}
		rows = append(rows, row)
	}
	a.table(header, rows)
}

func (a *App) printDessert(d *models.Dessert) {
	image := models.ImageURL(a.imageBase(), d.ImageURL)
	if image == "" {
		image = "-"
	}
	a.heading("#%d %s", d.ID, d.Title)
	a.fields([][2]string{
		{"Category", d.Category},
		{"Description", str(d.Description)},
		{"Ingredients", str(d.Ingredients)},
		{"Calories", num(d.Calories)},
		{"Proteins", num(d.Proteins)},
		{"Fats", num(d.Fats)},
		{"Carbs", num(d.Carbs)},
		{"Weight", str(d.Weight)},
		{"Price", num(d.Price)},
		{"Image", image},
		{"Active", yesNo(d.IsActive)},
	})
}

// dessertFlags are the editable fields shared by create and update.
type dessertFlags struct {
	title       string
	category    string
	description string
	ingredients string
	weight      string
	image       string
	upload      string
	calories    float64
	proteins    float64
	fats        float64
	carbs       float64
	price       float64
	active      bool
}

func (f *dessertFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.title, "title", "", "title")
	fs.StringVar(&f.category, "category", "", "comma-separated categories")
	fs.StringVar(&f.description, "description", "", `description ("-" to type it in)`)
	fs.StringVar(&f.ingredients, "ingredients", "", "ingredients")
	fs.StringVar(&f.weight, "weight", "", "weight, e.g. 120 g")
	fs.StringVar(&f.image, "image", "", "image URL or uploaded file reference")
	fs.StringVar(&f.upload, "upload", "", "upload this image file and use it")
	fs.Float64Var(&f.calories, "calories", 0, "calories per 100 g")
	fs.Float64Var(&f.proteins, "proteins", 0, "proteins per 100 g")
	fs.Float64Var(&f.fats, "fats", 0, "fats per 100 g")
	fs.Float64Var(&f.carbs, "carbs", 0, "carbohydrates per 100 g")
	fs.Float64Var(&f.price, "price", 0, "price")
	fs.BoolVar(&f.active, "active", true, "show the dessert in the catalog")
	cmd.MarkFlagsMutuallyExclusive("image", "upload")
}

// patch collects only the flags the user passed. It also resolves the
// interactive description and the image upload.
func (f *dessertFlags) patch(ctx context.Context, a *App, cmd *cobra.Command) (models.DessertPatch, error) {
	fs := cmd.Flags()
	var p models.DessertPatch

	strs := []struct {
		name string
		val  *string
		dst  **string
	}{
		{"title", &f.title, &p.Title},
		{"category", &f.category, &p.Category},
		{"description", &f.description, &p.Description},
		{"ingredients", &f.ingredients, &p.Ingredients},
		{"weight", &f.weight, &p.Weight},
		{"image", &f.image, &p.ImageURL},
	}
	for _, s := range strs {
		if fs.Changed(s.name) {
			*s.dst = s.val
		}
	}

	nums := []struct {
		name string
		val  *float64
		dst  **float64
	}{
		{"calories", &f.calories, &p.Calories},
		{"proteins", &f.proteins, &p.Proteins},
		{"fats", &f.fats, &p.Fats},
		{"carbs", &f.carbs, &p.Carbs},
		{"price", &f.price, &p.Price},
	}
	for _, n := range nums {
		if fs.Changed(n.name) {
			*n.dst = n.val
		}
	}

	if fs.Changed("active") {
		p.IsActive = &f.active
	}

	if p.Description != nil && *p.Description == "-" {
		text, err := GetMultiline(a.reader, "Description:", a.out)
		if err != nil {
			return p, err
		}
		p.Description = &text
	}

	if f.upload != "" {
		img, err := a.uploads.UploadImage(ctx, f.upload)
		if err != nil {
			return p, err
		}
		a.printf("Uploaded %s\n", img.Filename)
		p.ImageURL = &img.URL
	}
	return p, nil
}

func newListCmd(rt *runtime) *cobra.Command {
	var category, search, status string
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List catalog desserts",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			q := models.DessertQuery{Category: category, Search: search}
			switch strings.ToLower(status) {
			case "", "all":
			case "active":
				q.IsActive = new(bool)
				*q.IsActive = true
			case "inactive":
				q.IsActive = new(bool)
			default:
				return fmt.Errorf("unknown status %q (want all, active or inactive)", status)
			}

			a := rt.app
			entries, err := a.catalog.List(cmd.Context(), q)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				a.warn("No desserts found")
				return nil
			}
			a.dessertTable(entries, nil)
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "only this category")
	cmd.Flags().StringVarP(&search, "search", "s", "", "search titles and descriptions")
	cmd.Flags().StringVar(&status, "status", "", "all, active or inactive")
	return cmd
}

func newShowCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one dessert",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			d, err := rt.app.catalog.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			rt.app.printDessert(d)
			return nil
		},
	}
}

func newCategoriesCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the known categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cats, err := rt.app.catalog.Categories(cmd.Context())
			if err != nil {
				return err
			}
			for _, c := range cats {
				rt.app.printf("%s\n", c)
			}
			return nil
		},
	}
}

func newCreateCmd(rt *runtime) *cobra.Command {
	var f dessertFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a dessert to the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := rt.app
			p, err := f.patch(cmd.Context(), a, cmd)
			if err != nil {
				return err
			}
			in := models.DessertInput{
				Title:       f.title,
				Category:    f.category,
				ImageURL:    p.ImageURL,
				Description: p.Description,
				Ingredients: p.Ingredients,
				Calories:    p.Calories,
				Proteins:    p.Proteins,
				Fats:        p.Fats,
				Carbs:       p.Carbs,
				Weight:      p.Weight,
				Price:       p.Price,
				IsActive:    f.active,
			}
			d, err := a.catalog.Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			a.success("Created dessert #%d", d.ID)
			return nil
		},
	}
	f.register(cmd)
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func newUpdateCmd(rt *runtime) *cobra.Command {
	var f dessertFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change some fields of a dessert",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			a := rt.app
			p, err := f.patch(cmd.Context(), a, cmd)
			if err != nil {
				return err
			}
			if p == (models.DessertPatch{}) {
				return errors.New("nothing to change")
			}
			d, err := a.catalog.Update(cmd.Context(), id, p)
			if err != nil {
				return err
			}
			a.success("Updated dessert #%d", d.ID)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func newDeleteCmd(rt *runtime) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Remove a dessert from the catalog",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			a := rt.app
			if !yes && !confirm(a.reader, fmt.Sprintf("Delete dessert #%d?", id), a.out) {
				a.warn("Cancelled")
				return nil
			}
			if err := a.catalog.Delete(cmd.Context(), id); err != nil {
				return err
			}
			a.success("Deleted dessert #%d", id)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func newSetActiveCmd(rt *runtime, use string, active bool) *cobra.Command {
	short := "Show a dessert in the catalog"
	if !active {
		short = "Hide a dessert from the catalog"
	}
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			d, err := rt.app.catalog.SetActive(cmd.Context(), id, active)
			if err != nil {
				return err
			}
			state := "active"
			if !d.IsActive {
				state = "inactive"
			}
			rt.app.success("#%d %s is now %s", d.ID, d.Title, state)
			return nil
		},
	}
}

func newImageCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "image",
		Short: "Upload or delete dessert images",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "upload <file>",
			Short: "Upload an image (jpg, png, webp, gif; at most 10 MB)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				img, err := rt.app.uploads.UploadImage(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				rt.app.success("Uploaded %s", img.Filename)
				rt.app.printf("URL: %s\n", img.URL)
				return nil
			},
		},
		&cobra.Command{
			Use:   "delete <filename>",
			Short: "Delete an uploaded image",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := rt.app.uploads.DeleteImage(cmd.Context(), args[0]); err != nil {
					return err
				}
				rt.app.success("Deleted %s", args[0])
				return nil
			},
		},
	)
	return cmd
}
