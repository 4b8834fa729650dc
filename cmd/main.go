package main

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ncruces/zenity"
	"github.com/zooyer/golib/xos"

	"github.com/zooyer/parallel/align"
	"github.com/zooyer/parallel/config"
	"github.com/zooyer/parallel/dxf"
	"github.com/zooyer/parallel/host"
	"github.com/zooyer/parallel/model"
)

const title = "平行对齐"

// Outcome 一次命令的结果
type Outcome string

const (
	Succeeded       Outcome = "旋转成功"
	AlreadyParallel Outcome = "已经平行"
	Unsupported     Outcome = "不支持的图元"
	Cancelled       Outcome = "已取消"
	Failed          Outcome = "旋转失败"
)

var ErrCancelled = errors.New("cancelled")

// Report 命令执行报告
type Report struct {
	Outcome   Outcome
	Reference string // 参照图元 ID
	Target    string // 被旋转的图元 ID（立面视图会换成立面标记）
	Strategy  [2]string
	Rotation  align.Rotation
	Err       error
}

func (r Report) Message() string {
	switch r.Outcome {
	case Succeeded:
		return fmt.Sprintf("图元 %s 已与 %s 平行：%s", r.Target, r.Reference, describe(r.Rotation))
	case AlreadyParallel:
		return fmt.Sprintf("图元 %s 与 %s %s", r.Target, r.Reference, describe(r.Rotation))
	case Unsupported:
		var ue *align.UnsupportedElementError
		if errors.As(r.Err, &ue) {
			return fmt.Sprintf("无法获取图元方向，不支持的类型：%s（%s）", ue.TypeName, ue.ID)
		}
		return fmt.Sprintf("不支持的图元：%v", r.Err)
	case Cancelled:
		return "操作已取消"
	default:
		return fmt.Sprintf("旋转失败，图纸未修改：%v", r.Err)
	}
}

// describe 旋转的中文描述，方向按从上往下看
func describe(r align.Rotation) string {
	if r.IsParallel() {
		return "已经平行"
	}
	direction := "顺时针"
	if r.CounterClockwise() {
		direction = "逆时针"
	}
	return fmt.Sprintf("%s旋转 %.2f°", direction, math.Abs(r.Degrees()))
}

// execute 计算并在事务中执行旋转，失败时回滚
func execute(doc *host.Document, aligner *align.Aligner, reference, target model.Element) Report {
	report := Report{Reference: reference.ID(), Target: target.ID()}

	// 立面视图本身转不动，方向和旋转都改用它的立面标记
	picked := target
	id, ok := align.RotationTarget(doc, picked)
	if ok {
		target, ok = doc.Element(id)
	}
	if !ok {
		report.Outcome = Unsupported
		report.Err = fmt.Errorf("elevation view without marker: %w",
			&align.UnsupportedElementError{ID: picked.ID(), TypeName: picked.TypeName()})
		return report
	}
	report.Target = target.ID()

	result, err := aligner.Align(doc, reference, target)
	if err != nil {
		report.Outcome, report.Err = Unsupported, err
		return report
	}
	report.Strategy = [2]string{result.Reference.Strategy, result.Target.Strategy}
	report.Rotation = result.Rotation

	if result.Rotation.IsParallel() {
		report.Outcome = AlreadyParallel
		return report
	}

	tx := doc.Begin(title)
	if err = tx.Rotate(target.ID(), *result.Rotation.Axis, result.Rotation.Angle); err != nil {
		_ = tx.RollBack()
		report.Outcome, report.Err = Failed, err
		return report
	}
	if err = tx.Commit(); err != nil {
		report.Outcome, report.Err = Failed, err
		return report
	}

	report.Outcome = Succeeded
	return report
}

// pick 弹出列表选择图元
func pick(doc *host.Document, prompt string, exclude string) (model.Element, error) {
	var (
		items  []string
		lookup = make(map[string]model.Element)
	)
	for _, el := range doc.Elements() {
		if el.ID() == exclude {
			continue
		}
		item := doc.Describe(el)
		items = append(items, item)
		lookup[item] = el
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("no element to pick: %w", host.ErrNotFound)
	}

	item, err := zenity.List(prompt, items, zenity.Title(title), zenity.Width(640), zenity.Height(480))
	if errors.Is(err, zenity.ErrCanceled) {
		return nil, ErrCancelled
	}
	if err != nil {
		return nil, err
	}
	el, ok := lookup[item]
	if !ok {
		return nil, ErrCancelled
	}
	return el, nil
}

// element 命令行给出句柄时直接查找，否则弹出选择
func element(doc *host.Document, index int, prompt, exclude string) (model.Element, error) {
	if len(os.Args) > index {
		el, ok := doc.Element(os.Args[index])
		if !ok {
			return nil, fmt.Errorf("element %s: %w", os.Args[index], host.ErrNotFound)
		}
		return el, nil
	}
	return pick(doc, prompt, exclude)
}

func notify(report Report) {
	var err error
	switch report.Outcome {
	case Succeeded, AlreadyParallel:
		err = zenity.Info(report.Message(), zenity.Title(title), zenity.InfoIcon)
	case Cancelled:
		return
	case Unsupported:
		err = zenity.Warning(report.Message(), zenity.Title(title), zenity.WarningIcon)
	default:
		err = zenity.Error(report.Message(), zenity.Title(title), zenity.ErrorIcon)
	}
	if err != nil && !errors.Is(err, zenity.ErrCanceled) {
		fmt.Println("弹窗失败:", err)
	}
}

// record 追加一行对齐记录
func record(filename string, report Report) error {
	var line = fmt.Sprintf("%s,%s,%s,%s,%s,%.4f,%s,%s\n",
		time.Now().Format(time.DateTime),
		report.Reference, report.Target,
		report.Strategy[0], report.Strategy[1],
		report.Rotation.Degrees(),
		report.Outcome,
		strings.ReplaceAll(fmt.Sprint(report.Err), ",", ";"),
	)
	return xos.AppendFile(filename, []byte(line), 0644)
}

func init() {
	if strings.HasPrefix(filepath.Base(os.Args[0]), "___go_build_") && len(os.Args) < 2 {
		os.Args = append(os.Args, "cmd/testdata/parallel.dxf")
	}
}

func main() {
	defer xos.PauseExit()

	var filename string
	if len(os.Args) > 1 {
		filename = os.Args[1]
	} else {
		var err error
		filename, err = zenity.SelectFile(
			zenity.Title("请选择 DXF 图纸"),
			zenity.FileFilters{{Name: "DXF 图纸", Patterns: []string{"*.dxf"}, CaseFold: true}},
		)
		if err != nil {
			fmt.Println("未选择图纸:", err)
			return
		}
	}

	cfg, err := config.Load(filepath.Join(filepath.Dir(filename), config.FileName))
	if err != nil {
		panic(err)
	}

	drawing, err := dxf.Open(filename)
	if err != nil {
		panic(err)
	}

	var (
		doc     = host.New(drawing, cfg)
		aligner = align.NewAligner(cfg.MEP())
	)
	fmt.Printf("读取图纸: %s, %d 个图元, %d 个视图, %d 个立面标记\n",
		filename, len(doc.Elements()), len(drawing.Views), len(doc.ElevationMarkers()))
	fmt.Println("方向提取顺序:", strings.Join(aligner.Extractor.Strategies(), " > "))
	fmt.Println("机电类别:", cfg.MEP().Sorted())

	var report Report
	reference, err := element(doc, 2, "选择参照图元", "")
	if err == nil {
		var target model.Element
		if target, err = element(doc, 3, "选择要旋转的图元", reference.ID()); err == nil {
			fmt.Println("参照图元:", doc.Describe(reference))
			fmt.Println("旋转图元:", doc.Describe(target))
			report = execute(doc, aligner, reference, target)
		}
	}
	switch {
	case errors.Is(err, ErrCancelled):
		report = Report{Outcome: Cancelled, Err: err}
	case err != nil:
		report = Report{Outcome: Failed, Err: err}
	}

	fmt.Printf("[%s] %s\n", report.Outcome, report.Message())
	if report.Outcome != Cancelled {
		fmt.Printf("    |-- [方向策略]: %s / %s\n", report.Strategy[0], report.Strategy[1])
		if !report.Rotation.IsParallel() {
			axis := report.Rotation.Axis
			fmt.Printf("    |-- [旋转轴]: (%.2f,%.2f,%.2f) -> (%.0f,%.0f,%.0f)\n",
				axis.Origin.X, axis.Origin.Y, axis.Origin.Z,
				axis.Direction.X, axis.Direction.Y, axis.Direction.Z)
		}
	}
	notify(report)

	var logfile = strings.TrimSuffix(filename, filepath.Ext(filename)) + ".parallel.csv"
	if err = record(logfile, report); err != nil {
		fmt.Println("写入记录失败:", err)
		return
	}
	fmt.Println("写入记录:", logfile)
}
