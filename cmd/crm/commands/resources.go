package commands

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/crm-client/internal/constants"
	"github.com/fivetwenty-io/crm-client/pkg/crm"
)

// resourceDef describes how one resource kind is exposed on the command line.
type resourceDef[T any, K crm.Key] struct {
	use      string
	aliases  []string
	singular string
	columns  []string
	client   func(crm.Client) crm.ResourceClient[T, K]
	parseKey func(string) (K, error)
	// noCreate hides create for kinds the API registers elsewhere.
	noCreate bool
}

// NewResourceCommands returns one command group per resource kind.
//
//nolint:funlen // one entry per resource kind
func NewResourceCommands() []*cobra.Command {
	users := newResourceCommand(resourceDef[crm.ApplicationUser, string]{
		use: "users", aliases: []string{"user"}, singular: "user",
		columns:  []string{"id", "userName", "email", "firstName", "lastName"},
		client:   func(c crm.Client) crm.ResourceClient[crm.ApplicationUser, string] { return c.Users() },
		parseKey: parseStringKey,
		noCreate: true,
	})
	users.AddCommand(newUsersRolesCommand())
	users.AddCommand(newUsersGetRolesCommand())

	return []*cobra.Command{
		users,
		newResourceCommand(resourceDef[crm.Customer, int64]{
			use: "customers", aliases: []string{"customer"}, singular: "customer",
			columns:  []string{"id", "name", "email", "phone", "company"},
			client:   func(c crm.Client) crm.ResourceClient[crm.Customer, int64] { return c.Customers() },
			parseKey: parseInt64Key,
		}),
		newResourceCommand(resourceDef[crm.Address, int64]{
			use: "addresses", aliases: []string{"address"}, singular: "address",
			columns:  []string{"id", "street", "city", "state", "postalCode", "country"},
			client:   func(c crm.Client) crm.ResourceClient[crm.Address, int64] { return c.Addresses() },
			parseKey: parseInt64Key,
		}),
		newResourceCommand(resourceDef[crm.Contact, int64]{
			use: "contacts", aliases: []string{"contact"}, singular: "contact",
			columns:  []string{"id", "customerId", "firstName", "lastName", "email"},
			client:   func(c crm.Client) crm.ResourceClient[crm.Contact, int64] { return c.Contacts() },
			parseKey: parseInt64Key,
		}),
		newResourceCommand(resourceDef[crm.Opportunity, int64]{
			use: "opportunities", aliases: []string{"opportunity", "opps"}, singular: "opportunity",
			columns:  []string{"id", "name", "customerId", "stage", "amount", "expectedCloseDate"},
			client:   func(c crm.Client) crm.ResourceClient[crm.Opportunity, int64] { return c.Opportunities() },
			parseKey: parseInt64Key,
		}),
		newResourceCommand(resourceDef[crm.Lead, int64]{
			use: "leads", aliases: []string{"lead"}, singular: "lead",
			columns:  []string{"id", "name", "email", "company", "status"},
			client:   func(c crm.Client) crm.ResourceClient[crm.Lead, int64] { return c.Leads() },
			parseKey: parseInt64Key,
		}),
		newResourceCommand(resourceDef[crm.Sale, int64]{
			use: "sales", aliases: []string{"sale"}, singular: "sale",
			columns:  []string{"id", "customerId", "productId", "serviceId", "quantity", "totalAmount", "saleDate"},
			client:   func(c crm.Client) crm.ResourceClient[crm.Sale, int64] { return c.Sales() },
			parseKey: parseInt64Key,
		}),
		newResourceCommand(resourceDef[crm.Reward, int64]{
			use: "rewards", aliases: []string{"reward"}, singular: "reward",
			columns:  []string{"id", "customerId", "points", "description", "awardedAt"},
			client:   func(c crm.Client) crm.ResourceClient[crm.Reward, int64] { return c.Rewards() },
			parseKey: parseInt64Key,
		}),
		newResourceCommand(resourceDef[crm.ProductCategory, int64]{
			use: "product-categories", aliases: []string{"product-category"}, singular: "product category",
			columns:  []string{"id", "name", "description"},
			client:   func(c crm.Client) crm.ResourceClient[crm.ProductCategory, int64] { return c.ProductCategories() },
			parseKey: parseInt64Key,
		}),
		newResourceCommand(resourceDef[crm.ServiceCategory, int64]{
			use: "service-categories", aliases: []string{"service-category"}, singular: "service category",
			columns:  []string{"id", "name", "description"},
			client:   func(c crm.Client) crm.ResourceClient[crm.ServiceCategory, int64] { return c.ServiceCategories() },
			parseKey: parseInt64Key,
		}),
		newResourceCommand(resourceDef[crm.Product, int64]{
			use: "products", aliases: []string{"product"}, singular: "product",
			columns:  []string{"id", "name", "productCategoryId", "vendorId", "price", "stock"},
			client:   func(c crm.Client) crm.ResourceClient[crm.Product, int64] { return c.Products() },
			parseKey: parseInt64Key,
		}),
		newResourceCommand(resourceDef[crm.Service, int64]{
			use: "services", aliases: []string{"service"}, singular: "service",
			columns:  []string{"id", "name", "serviceCategoryId", "price"},
			client:   func(c crm.Client) crm.ResourceClient[crm.Service, int64] { return c.Services() },
			parseKey: parseInt64Key,
		}),
		newResourceCommand(resourceDef[crm.Vendor, int64]{
			use: "vendors", aliases: []string{"vendor"}, singular: "vendor",
			columns:  []string{"id", "name", "contactName", "email", "phone"},
			client:   func(c crm.Client) crm.ResourceClient[crm.Vendor, int64] { return c.Vendors() },
			parseKey: parseInt64Key,
		}),
		newResourceCommand(resourceDef[crm.SupportCase, int64]{
			use: "support-cases", aliases: []string{"support-case", "cases"}, singular: "support case",
			columns:  []string{"id", "customerId", "subject", "priority", "status", "openedAt"},
			client:   func(c crm.Client) crm.ResourceClient[crm.SupportCase, int64] { return c.SupportCases() },
			parseKey: parseInt64Key,
		}),
		newResourceCommand(resourceDef[crm.TodoTask, int64]{
			use: "todo-tasks", aliases: []string{"todo-task", "tasks"}, singular: "todo task",
			columns:  []string{"id", "title", "userId", "dueDate", "completed"},
			client:   func(c crm.Client) crm.ResourceClient[crm.TodoTask, int64] { return c.TodoTasks() },
			parseKey: parseInt64Key,
		}),
	}
}

func newResourceCommand[T any, K crm.Key](def resourceDef[T, K]) *cobra.Command {
	cmd := &cobra.Command{
		Use:     def.use,
		Aliases: def.aliases,
		Short:   "Manage " + def.use,
		Long:    fmt.Sprintf("List, get, create, update and delete %s", def.use),
	}

	cmd.AddCommand(newResourceListCommand(def))
	cmd.AddCommand(newResourceGetCommand(def))

	if def.noCreate {
		cmd.Long = fmt.Sprintf("List, get, update and delete %s", def.use)
	} else {
		cmd.AddCommand(newResourceCreateCommand(def))
	}

	cmd.AddCommand(newResourceUpdateCommand(def))
	cmd.AddCommand(newResourceDeleteCommand(def))

	return cmd
}

func newResourceListCommand[T any, K crm.Key](def resourceDef[T, K]) *cobra.Command {
	var (
		filter, orderBy, expand, sel string
		top, skip                    int
		count                        bool
	)

	cmd := &cobra.Command{
		Use:   constants.OperationList,
		Short: "List " + def.use,
		Long:  fmt.Sprintf("Query %s with OData options", def.use),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat()
			if err != nil {
				return err
			}

			client, err := newClient(cmd.Context())
			if err != nil {
				return err
			}

			opts := crm.NewQueryOptions().WithCount(count)

			if cmd.Flags().Changed("filter") {
				opts.WithFilter(filter)
			}

			if top > 0 {
				opts.WithTop(top)
			}

			if cmd.Flags().Changed("skip") {
				opts.WithSkip(skip)
			}

			if cmd.Flags().Changed("orderby") {
				opts.WithOrderBy(orderBy)
			}

			if cmd.Flags().Changed("expand") {
				opts.WithExpand(expand)
			}

			if cmd.Flags().Changed("select") {
				opts.WithSelect(sel)
			}

			page, err := def.client(client).List(cmd.Context(), opts)
			if err != nil {
				return fmt.Errorf("failed to list %s: %w", def.use, err)
			}

			out := cmd.OutOrStdout()

			if done, err := writeStructured(out, format, page); done {
				return err
			}

			return outputPageTable(out, def, page)
		},
	}

	cmd.Flags().StringVar(&filter, "filter", "", "OData $filter expression, e.g. \"Name eq 'Acme'\"")
	cmd.Flags().IntVar(&top, "top", constants.DefaultPageSize, "maximum number of records ($top); 0 lets the server decide")
	cmd.Flags().IntVar(&skip, "skip", 0, "number of records to skip ($skip)")
	cmd.Flags().StringVar(&orderBy, "orderby", "", "OData $orderby expression")
	cmd.Flags().StringVar(&expand, "expand", "", "OData $expand expression")
	cmd.Flags().StringVar(&sel, "select", "", "comma separated fields ($select)")
	cmd.Flags().BoolVar(&count, "count", false, "ask the server for the total count ($count)")

	return cmd
}

func outputPageTable[T any, K crm.Key](out io.Writer, def resourceDef[T, K], page *crm.PagedResult[T]) error {
	if len(page.Items) == 0 {
		_, _ = fmt.Fprintf(out, "No %s found\n", def.use)

		return nil
	}

	rows := make([][]string, 0, len(page.Items))

	for i := range page.Items {
		row, err := recordRow(&page.Items[i], def.columns)
		if err != nil {
			return err
		}

		rows = append(rows, row)
	}

	if err := renderTable(out, def.columns, rows); err != nil {
		return err
	}

	if page.HasCount() {
		_, _ = fmt.Fprintf(out, "Showing %d of %d %s\n", len(page.Items), *page.TotalCount, def.use)
	}

	return nil
}

// outputRecord prints one record as JSON, YAML or a property table with the
// resource's columns first.
func outputRecord(out io.Writer, format string, columns []string, record interface{}) error {
	if done, err := writeStructured(out, format, record); done {
		return err
	}

	fields, err := recordFields(record)
	if err != nil {
		return err
	}

	properties := make([][]string, 0, len(fields))

	for _, column := range columns {
		if value, ok := fields[column]; ok {
			properties = append(properties, []string{column, formatField(value)})
			delete(fields, column)
		}
	}

	for _, key := range slices.Sorted(maps.Keys(fields)) {
		properties = append(properties, []string{key, formatField(fields[key])})
	}

	return renderProperties(out, properties)
}

func newResourceGetCommand[T any, K crm.Key](def resourceDef[T, K]) *cobra.Command {
	return &cobra.Command{
		Use:   constants.OperationGet + " KEY",
		Short: "Get a " + def.singular,
		Long:  fmt.Sprintf("Display one %s by key", def.singular),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := def.parseKey(args[0])
			if err != nil {
				return err
			}

			format, err := outputFormat()
			if err != nil {
				return err
			}

			client, err := newClient(cmd.Context())
			if err != nil {
				return err
			}

			record, err := def.client(client).Get(cmd.Context(), key)
			if err != nil {
				return fmt.Errorf("failed to get %s %s: %w", def.singular, args[0], err)
			}

			if record == nil {
				return fmt.Errorf("%s %s: %w", def.singular, args[0], constants.ErrResourceNotFound)
			}

			return outputRecord(cmd.OutOrStdout(), format, def.columns, record)
		},
	}
}

func newResourceCreateCommand[T any, K crm.Key](def resourceDef[T, K]) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   constants.OperationCreate,
		Short: "Create a " + def.singular,
		Long:  fmt.Sprintf("Create a %s from a JSON or YAML file", def.singular),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			record, err := readRecordFile[T](file)
			if err != nil {
				return err
			}

			format, err := outputFormat()
			if err != nil {
				return err
			}

			client, err := newClient(cmd.Context())
			if err != nil {
				return err
			}

			created, err := def.client(client).Insert(cmd.Context(), record)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", def.singular, err)
			}

			return outputRecord(cmd.OutOrStdout(), format, def.columns, created)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON or YAML file with the record")

	return cmd
}

func newResourceUpdateCommand[T any, K crm.Key](def resourceDef[T, K]) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   constants.OperationUpdate + " KEY",
		Short: "Update a " + def.singular,
		Long:  fmt.Sprintf("Replace a %s with the contents of a JSON or YAML file", def.singular),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := def.parseKey(args[0])
			if err != nil {
				return err
			}

			record, err := readRecordFile[T](file)
			if err != nil {
				return err
			}

			client, err := newClient(cmd.Context())
			if err != nil {
				return err
			}

			if err := def.client(client).Update(cmd.Context(), key, record); err != nil {
				return fmt.Errorf("failed to update %s %s: %w", def.singular, args[0], err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated %s %s\n", def.singular, args[0])

			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON or YAML file with the record")

	return cmd
}

func newResourceDeleteCommand[T any, K crm.Key](def resourceDef[T, K]) *cobra.Command {
	return &cobra.Command{
		Use:   constants.OperationDelete + " KEY",
		Short: "Delete a " + def.singular,
		Long:  fmt.Sprintf("Delete one %s by key", def.singular),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := def.parseKey(args[0])
			if err != nil {
				return err
			}

			client, err := newClient(cmd.Context())
			if err != nil {
				return err
			}

			if err := def.client(client).Delete(cmd.Context(), key); err != nil {
				return fmt.Errorf("failed to delete %s %s: %w", def.singular, args[0], err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s %s\n", def.singular, args[0])

			return nil
		},
	}
}
