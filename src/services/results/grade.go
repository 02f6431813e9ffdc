package results

import "math"

// CalculateGrade แปลงเปอร์เซ็นต์เป็นเกรด เช็คจากเกณฑ์สูงสุดลงมา
// ค่าที่เกิน 100 ได้ A+ ค่าติดลบหรือ NaN ได้ F
func CalculateGrade(percentage float64) string {
	switch {
	case percentage >= 90:
		return "A+"
	case percentage >= 80:
		return "A"
	case percentage >= 70:
		return "B"
	case percentage >= 60:
		return "C"
	case percentage >= 50:
		return "D"
	default:
		return "F"
	}
}

// roundTo2 ปัดทศนิยม 2 ตำแหน่ง
func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
