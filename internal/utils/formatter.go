package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"gold-bot/internal/model"
)

// Formatter собирает тексты сообщений бота на вьетнамском.
// Дата заголовка берётся из Now, все времена переводятся в Location.
type Formatter struct {
	Location *time.Location
	Now      func() time.Time
	// Schedule и Timezone нужны только для текста справки.
	Schedule string
	Timezone string
}

func NewFormatter(loc *time.Location, schedule, timezone string) *Formatter {
	return &Formatter{
		Location: loc,
		Now:      time.Now,
		Schedule: schedule,
		Timezone: timezone,
	}
}

func (f *Formatter) FormatGoldPrice(data model.PriceRecord) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🥇 **Cập Nhật Giá Vàng - %s**\n\n", f.LongDate(f.now()))
	fmt.Fprintf(&b, "💰 **Giá Hiện Tại:** $%s mỗi %s\n", Fixed2(data.Price), unitLabel(data.Unit))
	fmt.Fprintf(&b, "💱 **Đơn Vị Tiền Tệ:** %s\n", data.Currency)

	if data.HasChange() {
		change := *data.Change24h
		emoji, sign := "📈", "+"
		if change < 0 {
			emoji, sign = "📉", ""
		}
		fmt.Fprintf(&b, "%s **Thay Đổi 24h:** %s$%s", emoji, sign, Fixed2(change))
		if data.HasChangePercent() {
			fmt.Fprintf(&b, " (%s%s%%)", sign, Fixed2(*data.ChangePercent24h))
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "⏰ **Cập Nhật Lần Cuối:** %s\n\n", f.TimeOfDay(data.Timestamp))
	b.WriteString("_Chúc bạn một ngày vàng son! ✨_")

	return b.String()
}

func (f *Formatter) FormatHelp() string {
	return "🥇 **Lệnh Bot Giá Vàng**\n\n" +
		"`!gold` hoặc `!goldprice` - Xem giá vàng hiện tại\n" +
		"`!help` - Hiển thị tin nhắn trợ giúp này\n\n" +
		"📅 **Cập Nhật Tự Động:** " + DescribeSchedule(f.Schedule) + " " + f.Timezone
}

// Fixed2 — ровно два знака после запятой, без экспоненты. Минус
// сохраняется и у значений, округлённых до нуля: -0.004 -> "-0.00".
func Fixed2(v float64) string {
	if !model.Finite(v) {
		return fmt.Sprintf("%.2f", v)
	}
	out := decimal.NewFromFloat(v).StringFixed(2)
	if v < 0 && !strings.HasPrefix(out, "-") {
		out = "-" + out
	}
	return out
}

var weekdaysVI = [...]string{
	time.Sunday:    "Chủ Nhật",
	time.Monday:    "Thứ Hai",
	time.Tuesday:   "Thứ Ba",
	time.Wednesday: "Thứ Tư",
	time.Thursday:  "Thứ Năm",
	time.Friday:    "Thứ Sáu",
	time.Saturday:  "Thứ Bảy",
}

// LongDate: "Thứ Hai, 1 tháng 1, 2024" (vi-VN, weekday long).
func (f *Formatter) LongDate(t time.Time) string {
	t = f.in(t)
	return fmt.Sprintf("%s, %d tháng %d, %d", weekdaysVI[t.Weekday()], t.Day(), int(t.Month()), t.Year())
}

// TimeOfDay: "07:05:09", 24-часовой формат как в vi-VN.
func (f *Formatter) TimeOfDay(t time.Time) string {
	return f.in(t).Format("15:04:05")
}

// DescribeSchedule переводит ежедневное cron-выражение "M H * * *" в
// "Hàng ngày lúc 9:00 AM". Остальные выражения возвращаются как есть.
func DescribeSchedule(expr string) string {
	fields := strings.Fields(expr)
	if len(fields) != 5 || fields[2] != "*" || fields[3] != "*" || fields[4] != "*" {
		return "Theo lịch `" + expr + "`"
	}
	var minute, hour int
	if _, err := fmt.Sscanf(fields[0]+" "+fields[1], "%d %d", &minute, &hour); err != nil ||
		minute < 0 || minute > 59 || hour < 0 || hour > 23 {
		return "Theo lịch `" + expr + "`"
	}
	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	h12 := hour % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("Hàng ngày lúc %d:%02d %s", h12, minute, suffix)
}

func unitLabel(unit string) string {
	if unit == "oz" {
		return "ounce (lượng)"
	}
	return unit
}

func (f *Formatter) now() time.Time {
	if f.Now == nil {
		return time.Now()
	}
	return f.Now()
}

func (f *Formatter) in(t time.Time) time.Time {
	if f.Location == nil {
		return t
	}
	return t.In(f.Location)
}
