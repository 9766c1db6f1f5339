package record

import (
	"fmt"

	"github.com/spf13/cobra"

	"swimlog/cmd/client/cmd/types"
	"swimlog/internal/domain/best"
	"swimlog/internal/domain/listview"
	"swimlog/internal/domain/record"
)

var (
	listStyle    string
	listDistance string
	listCourse   string
	listSort     string
	listAsc      bool
	listDesc     bool
	listFormat   string
)

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "Список заплывов",
	Long: `Просмотр всех заплывов с фильтрами по стилю, дистанции и бассейну.

Лучший результат в своей группе отмечается звёздочкой.
По умолчанию сначала новые записи.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}

		filter, err := buildFilter(listStyle, listDistance, listCourse)
		if err != nil {
			return err
		}
		sort, err := buildSort(listSort, listAsc, listDesc)
		if err != nil {
			return err
		}

		entries, err := app.ListRecords(cmd.Context())
		if err != nil {
			return err
		}

		// лучшие считаются по всем записям, фильтр на них не влияет
		bests := best.Compute(entries)
		view := listview.Apply(entries, filter, sort)

		format := listFormat
		if types.JSONOutput(cmd.Context()) {
			format = formatJSON
		}
		return printList(cmd.OutOrStdout(), view, bests, format)
	},
}

func buildFilter(style, distance, course string) (listview.Filter, error) {
	var f listview.Filter
	if style != "" {
		s, err := record.ParseStyle(style)
		if err != nil {
			return f, err
		}
		f.Style = &s
	}
	if distance != "" {
		d, err := record.ParseDistance(distance)
		if err != nil {
			return f, err
		}
		f.Distance = &d
	}
	if course != "" {
		short, err := record.ParseCourse(course)
		if err != nil {
			return f, err
		}
		f.ShortCourse = &short
	}
	return f, nil
}

func buildSort(key string, asc, desc bool) (listview.Sort, error) {
	if asc && desc {
		return listview.Sort{}, fmt.Errorf("флаги --asc и --desc несовместимы")
	}
	s := listview.DefaultSort()
	if key != "" {
		k, err := listview.ParseSortKey(key)
		if err != nil {
			return s, err
		}
		// новый ключ начинает с возрастания: самые быстрые сверху
		if k != s.Key {
			s = s.Toggle(k)
		}
	}
	if asc {
		s.Direction = listview.Asc
	}
	if desc {
		s.Direction = listview.Desc
	}
	return s, nil
}

func init() {
	ListCmd.Flags().StringVarP(&listStyle, "style", "s", "", "фильтр по стилю (free, back, breast, fly, im или 1-5)")
	ListCmd.Flags().StringVarP(&listDistance, "distance", "d", "", "фильтр по дистанции (50, 100, 200, 400, 800, 1500)")
	ListCmd.Flags().StringVarP(&listCourse, "course", "c", "", "фильтр по бассейну (short, long)")
	ListCmd.Flags().StringVar(&listSort, "sort", "date", "сортировка (date, time)")
	ListCmd.Flags().BoolVar(&listAsc, "asc", false, "по возрастанию")
	ListCmd.Flags().BoolVar(&listDesc, "desc", false, "по убыванию")
	ListCmd.Flags().StringVarP(&listFormat, "format", "f", formatSimple, "формат вывода (simple, table, json, csv)")
}
