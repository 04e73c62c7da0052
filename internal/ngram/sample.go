package ngram

import "strings"

const sampleCorpus = `
안녕하세요 반갑습니다 감사합니다 고맙습니다
오늘은 날씨가 맑고 내일은 비가 온다고 합니다
한글은 누구나 쉽게 배울 수 있는 글자입니다
한국어 문장을 입력하고 변환을 확인합니다
프로그램을 설치하고 설정을 완료했습니다
컴퓨터 앞에서 코드를 작성하는 개발자입니다
두벌식 자판으로 한글을 입력합니다
가나다라마바사아자차카타파하
아버지가 방에 들어가신다
대한민국 만세
사랑합니다 행복하세요
좋은 하루 되세요 수고하셨습니다
잘 지내셨나요 다음에 또 만나요
읽고 쓰고 말하는 연습을 합니다
값을 저장하고 결과를 출력합니다
`

const sampleRepeat = 10

var samplePatterns = []string{
	"니다", "습니", "하세", "세요", "합니", "니까",
	"안녕", "감사", "반갑", "고맙", "축하", "미안",
	"으로", "에서", "하고", "이고", "그리", "하지",
	"입니", "했습", "되었", "있습", "없습", "완료",
	"오늘", "내일", "어제", "지금", "나중", "먼저",
	"한글", "영문", "변환", "입력", "출력", "처리",
}

const sampleSyllables = "가나다라마바사아자차카타파하이은는을를에서로의"

// Sample builds the small fixed model used by tests and demos.
func Sample() *Model {
	counter := NewCounter()
	counter.AddText(strings.Repeat(sampleCorpus, sampleRepeat))
	for _, pattern := range samplePatterns {
		counter.Boost(pattern, 100, 50)
	}
	for _, ch := range sampleSyllables {
		counter.Boost(string(ch), 200, 0)
	}
	return counter.Build(1, "sample")
}
