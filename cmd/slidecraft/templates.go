package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fredcamaral/slidecraft/internal/adapters/secondary/content"
	"github.com/fredcamaral/slidecraft/internal/adapters/secondary/pptx"
	"github.com/fredcamaral/slidecraft/internal/domain/entities"
	"github.com/fredcamaral/slidecraft/internal/domain/services"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Browse and fill library templates",
	Long: `Library templates are ready-made slide sequences with {field}
placeholders for church, business, marketing, education and government
presentations.`,
}

var templatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List library templates",
	Args:  cobra.NoArgs,
	RunE:  runTemplatesList,
}

var templatesFieldsCmd = &cobra.Command{
	Use:   "fields <template-id>",
	Short: "Show the fields a template expects",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplatesFields,
}

var templatesBuildCmd = &cobra.Command{
	Use:   "build <template-id>",
	Short: "Fill a template and build the deck",
	Long: `Fill a library template and build it. Values come from a JSON or YAML
file and from --set assignments, which take precedence. Unfilled fields
stay visible in the deck as {field}.

Example:
  slidecraft templates build sermon --set sermon_title="Grace Abounds"
  slidecraft templates build quarterly_review --values q3.yaml --handout`,
	Args: cobra.ExactArgs(1),
	RunE: runTemplatesBuild,
}

var templatesUploadsCmd = &cobra.Command{
	Use:   "uploads",
	Short: "List custom base templates in the uploads directory",
	Args:  cobra.NoArgs,
	RunE:  runTemplatesUploads,
}

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List the built-in themes",
	Args:  cobra.NoArgs,
	RunE:  runThemes,
}

func init() {
	templatesListCmd.Flags().String("category", "", "Only show one category")
	templatesListCmd.Flags().String("output", "table", "Output format: table, json")

	templatesBuildCmd.Flags().StringArray("set", nil, "Field assignment key=value (repeatable)")
	templatesBuildCmd.Flags().String("values", "", "JSON or YAML file with field values")
	addBuildFlags(templatesBuildCmd)

	themesCmd.Flags().String("output", "table", "Output format: table, json")

	templatesCmd.AddCommand(templatesListCmd)
	templatesCmd.AddCommand(templatesFieldsCmd)
	templatesCmd.AddCommand(templatesBuildCmd)
	templatesCmd.AddCommand(templatesUploadsCmd)

	rootCmd.AddCommand(templatesCmd)
	rootCmd.AddCommand(themesCmd)
}

func runTemplatesList(cmd *cobra.Command, args []string) error {
	library := services.NewTemplateService()
	category, _ := cmd.Flags().GetString("category")
	output, _ := cmd.Flags().GetString("output")

	templates := library.List()
	if category != "" {
		templates = library.ListByCategory(category)
	}

	out := cmd.OutOrStdout()
	if len(templates) == 0 {
		fmt.Fprintf(out, "No templates in category %q. Categories: %s\n", category, strings.Join(library.Categories(), ", "))
		return nil
	}

	if output == "json" {
		return writeJSON(out, templates)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tTHEME\tSLIDES\tFIELDS")
	fmt.Fprintln(w, "--\t----\t--------\t-----\t------\t------")
	for _, t := range templates {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\n",
			t.ID, t.Name, t.Category, t.Theme, len(t.Slides), len(library.FieldNames(t)))
	}
	return w.Flush()
}

func runTemplatesFields(cmd *cobra.Command, args []string) error {
	library := services.NewTemplateService()
	skeleton, err := lookupTemplate(library, args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%s)\n%s\n\n", skeleton.Name, skeleton.ID, skeleton.Description)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FIELD\tLABEL")
	for _, name := range library.FieldNames(skeleton) {
		fmt.Fprintf(w, "%s\t%s\n", name, services.FieldLabel(name))
	}
	return w.Flush()
}

func runTemplatesBuild(cmd *cobra.Command, args []string) error {
	a, err := setupApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	skeleton, err := lookupTemplate(a.templates, args[0])
	if err != nil {
		return err
	}

	values, err := templateValues(cmd)
	if err != nil {
		return err
	}
	for field, value := range values {
		values[field] = a.sanitizer.Sanitize(value)
	}

	var missing []string
	for _, name := range a.templates.FieldNames(skeleton) {
		if _, ok := values[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		a.logger.Warn("%d fields left unfilled: %s", len(missing), strings.Join(missing, ", "))
	}

	bc := entities.BuildConfig{
		Theme:  skeleton.Theme,
		Title:  skeleton.Name,
		Slides: a.templates.Substitute(skeleton, values),
	}
	applyConfig(cmd, a.config, &bc)
	_, err = a.build(cmd, bc)
	return err
}

// templateValues merges the values file with --set assignments
func templateValues(cmd *cobra.Command) (map[string]string, error) {
	values := map[string]string{}

	if path, _ := cmd.Flags().GetString("values"); path != "" {
		loaded, err := content.LoadValues(path)
		if err != nil {
			return nil, err
		}
		values = loaded
	}

	pairs, _ := cmd.Flags().GetStringArray("set")
	assigned, err := content.ParseAssignments(pairs)
	if err != nil {
		return nil, err
	}
	for _, key := range content.SortedKeys(assigned) {
		values[key] = assigned[key]
	}
	return values, nil
}

func runTemplatesUploads(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	templates, err := pptx.FindCustomTemplates(cfg.Template.UploadsDir)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(templates) == 0 {
		fmt.Fprintf(out, "No custom templates in %s\n", cfg.Template.UploadsDir)
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPATH")
	for _, t := range templates {
		fmt.Fprintf(w, "%s\t%s\n", t.Name, t.Path)
	}
	return w.Flush()
}

func runThemes(cmd *cobra.Command, args []string) error {
	themes := services.Themes()
	out := cmd.OutOrStdout()

	if output, _ := cmd.Flags().GetString("output"); output == "json" {
		return writeJSON(out, themes)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSTYLE\tPRIMARY\tACCENT\tDESCRIPTION")
	fmt.Fprintln(w, "--\t----\t-----\t-------\t------\t-----------")
	for _, t := range themes {
		fmt.Fprintf(w, "%s\t%s\t%s\t#%s\t#%s\t%s\n",
			t.ID, t.Name, t.Style, t.Palette.Primary.Hex(), t.Palette.Accent.Hex(), t.Description)
	}
	return w.Flush()
}

func lookupTemplate(library *services.TemplateService, id string) (entities.TemplateSkeleton, error) {
	skeleton, ok := library.Get(id)
	if !ok {
		ids := make([]string, 0)
		for _, t := range library.List() {
			ids = append(ids, t.ID)
		}
		return skeleton, fmt.Errorf("unknown template %q (available: %s)", id, strings.Join(ids, ", "))
	}
	return skeleton, nil
}

func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
