package aiplan

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Model names tried in order. Lite models first since they carry higher
// free-tier quotas, then flash, then the pro tier.
var geminiModels = []string{
	"gemini-2.0-flash-lite-preview-02-05",
	"gemini-2.0-flash-lite-001",
	"gemini-flash-lite-latest",
	"gemini-2.5-flash-lite",
	"gemini-2.0-flash",
	"gemini-2.0-flash-001",
	"gemini-2.5-flash",
	"gemini-flash-latest",
	"gemini-2.0-flash-exp",
	"gemini-2.5-pro",
	"gemini-pro-latest",
}

const (
	attemptTimeout  = 20 * time.Second
	overallDeadline = 90 * time.Second
	retryDelay      = time.Second
)

// Generator produces personalized fitness and diet plans. With an API key it
// asks Gemini; without one, or when every model fails, it falls back to a
// deterministic plan built from the same profile numbers.
type Generator struct {
	apiKey string
}

func NewGenerator(apiKey string) *Generator {
	return &Generator{apiKey: apiKey}
}

// Generate returns a Markdown plan for the given profile. Age and bodyType
// are optional. The returned plan is never empty.
func (g *Generator) Generate(ctx context.Context, weight, height float64, goal string, age *int, bodyType string) string {
	bmi := weight / ((height / 100) * (height / 100))

	if g.apiKey != "" {
		if plan, err := g.generateWithGemini(ctx, weight, height, bmi, goal, age, bodyType); err == nil {
			return plan
		} else {
			log.Printf("aiplan: all Gemini models failed, using fallback: %v", err)
		}
	}

	return g.fallbackPlan(weight, height, bmi, goal)
}

func (g *Generator) generateWithGemini(ctx context.Context, weight, height, bmi float64, goal string, age *int, bodyType string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, overallDeadline)
	defer cancel()

	client, err := genai.NewClient(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		return "", fmt.Errorf("creating gemini client: %w", err)
	}
	defer client.Close()

	prompt := buildPrompt(weight, height, bmi, goal, age, bodyType)

	var lastErr error
	for i, modelName := range geminiModels {
		if ctx.Err() != nil {
			break
		}

		text, err := func() (string, error) {
			attemptCtx, attemptCancel := context.WithTimeout(ctx, attemptTimeout)
			defer attemptCancel()

			model := client.GenerativeModel(modelName)
			resp, err := model.GenerateContent(attemptCtx, genai.Text(prompt))
			if err != nil {
				return "", err
			}
			if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
				return "", fmt.Errorf("model %s returned no candidates", modelName)
			}

			var sb strings.Builder
			for _, part := range resp.Candidates[0].Content.Parts {
				if textPart, ok := part.(genai.Text); ok {
					sb.WriteString(string(textPart))
				}
			}
			if sb.Len() == 0 {
				return "", fmt.Errorf("model %s returned empty text", modelName)
			}
			return sb.String(), nil
		}()
		if err == nil {
			return text, nil
		}

		lastErr = err
		log.Printf("aiplan: model %s failed: %v", modelName, err)
		time.Sleep(retryPause(i+1, ctx.Err()))
	}

	if lastErr == nil {
		lastErr = ctx.Err()
	}
	return "", lastErr
}

// retryPause returns the delay before trying the model at index next.
// No pause after the last model, or once the deadline has passed.
func retryPause(next int, ctxErr error) time.Duration {
	if next >= len(geminiModels) || ctxErr != nil {
		return 0
	}
	return retryDelay
}

func buildPrompt(weight, height, bmi float64, goal string, age *int, bodyType string) string {
	var extra strings.Builder
	if age != nil {
		fmt.Fprintf(&extra, "- Yaş: %d yıl\n", *age)
	}
	if bodyType != "" {
		fmt.Fprintf(&extra, "- Vücut Tipi: %s\n", bodyType)
	}

	return fmt.Sprintf(`Sen profesyonel bir fitness koçu ve diyetisyensin. Türkçe olarak kişiselleştirilmiş bir fitness ve diyet planı oluştur.

Kullanıcı Bilgileri:
- Kilo: %g kg
- Boy: %g cm
- BMI: %.2f
- Hedef: %s
%s
Lütfen aşağıdaki 4 bölümü içeren bir plan hazırla:

## 1. VÜCUT ANALİZİ
- BMI değerlendirmesi ve kategorisi
- İdeal kilo aralığı önerisi

## 2. HAFTALIK EGZERSİZ PROGRAMI
Her gün için kısa program (Pazartesi-Pazar)
- Antrenman türü ve süresi
- Temel hareketler

## 3. BESLENME PLANI
- Günlük kalori hedefi
- Örnek kahvaltı, öğle, akşam yemeği
- Ara öğün önerileri

## 4. ÖNEMLİ NOTLAR
- Su tüketimi
- Uyku önerisi
- Dikkat edilmesi gerekenler

Planı markdown formatında, başlıklar ve listeler ile düzenli şekilde sun.`,
		weight, height, bmi, goal, extra.String())
}

// bmiCategory follows the WHO bands.
func bmiCategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Zayıf - Kas kazanımına ve kalori alımını artırmaya odaklanın"
	case bmi < 25:
		return "Normal kilo - Dengeli beslenmeyi ve düzenli egzersizi koruyun"
	case bmi < 30:
		return "Fazla kilolu - Kardiyo ve kalori açığına odaklanın"
	default:
		return "Obez - Bir sağlık uzmanına danışmanız önerilir. Aşamalı kilo vermeye odaklanın"
	}
}

// calorieTarget uses a simplified Mifflin-St Jeor BMR with an assumed age of
// 30, adjusted by goal: a 500 kcal deficit for weight loss, a 500 kcal
// surplus for muscle gain.
func calorieTarget(weight, height float64, goal string) int {
	baseBMR := int(10*weight + 6.25*height - 5*30 + 5)

	switch strings.ToLower(goal) {
	case "weight loss":
		return baseBMR - 500
	case "muscle gain":
		return baseBMR + 500
	default:
		return baseBMR
	}
}

func (g *Generator) fallbackPlan(weight, height, bmi float64, goal string) string {
	return fmt.Sprintf(`
## Kişiselleştirilmiş Fitness & Diyet Planı (Otomatik Oluşturuldu)

**Profiliniz:**
- Kilo: %g kg
- Boy: %g cm
- BMI: %.2f
- Hedef: %s

### BMI Kategorisi:
%s

### Önerilen Egzersiz Planı:

**Kardiyo (Haftada 3-4 gün):**
- Koşu/Yürüyüş: 30 dakika
- Bisiklet: 45 dakika
- Yüzme: 30 dakika

**Kuvvet Antrenmanı (Haftada 3 gün):**
- Şınav: 3 set x 12 tekrar
- Squat (Çömelme): 3 set x 15 tekrar
- Plank: 3 set x 30 saniye
- Dambıl egzersizleri: 3 set x 10 tekrar

**Esneklik (Günlük):**
- Yoga: 15-20 dakika
- Esneme Hareketleri: 10 dakika

### Önerilen Beslenme Planı:

**Kahvaltı:**
- Meyveli ve kuruyemişli yulaf ezmesi
- Ballı süzme yoğurt
- Yeşil çay

**Öğle Yemeği:**
- Izgara tavuk göğsü veya balık
- Esmer pirinç veya kinoa
- Karışık sebzeler

**Akşam Yemeği:**
- Yağsız protein (hindi, balık)
- Tatlı patates
- Büyük bir kase salata

**Ara Öğünler:**
- Taze meyveler
- Kuruyemiş (badem, ceviz)
- Protein shake

### Günlük Kalori Hedefi:
%d kalori

### Su Tüketimi:
- Günde 8-10 bardak su için
- Şekerli içeceklerden kaçının

### Önemli Notlar:
- Yeni bir fitness programına başlamadan önce bir sağlık uzmanına danışın
- Aşamalı olarak ilerleyin ve vücudunuzu dinleyin
- Yeterli uyku alın (geceleri 7-9 saat)
- İlerlemenizi haftalık olarak takip edin

---
*Bu plan yapay zeka tarafından oluşturulmuştur ve genel bir rehber olarak kullanılmalıdır. Kişiselleştirilmiş tavsiyeler için sertifikalı fitness eğitmenleri ve beslenme uzmanlarına danışın.*
`, weight, height, bmi, goal, bmiCategory(bmi), calorieTarget(weight, height, goal))
}
